package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name                   string
		termW, termH           int
		wantCols, wantRows     int
		wantOffCol, wantOffRow int
	}{
		{"exact", 240, 160, 240, 160, 0, 0},
		{"wide terminal", 200, 40, 60, 40, 70, 0},
		{"narrow terminal", 30, 100, 30, 20, 0, 40},
		{"empty", 0, 0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, offCol, offRow := Fit(tt.termW, tt.termH, 240, 320)
			if cols != tt.wantCols || rows != tt.wantRows || offCol != tt.wantOffCol || offRow != tt.wantOffRow {
				t.Errorf("Fit(%d, %d) = %d, %d, %d, %d; want %d, %d, %d, %d",
					tt.termW, tt.termH, cols, rows, offCol, offRow,
					tt.wantCols, tt.wantRows, tt.wantOffCol, tt.wantOffRow)
			}
		})
	}
}

func TestMaskBounds(t *testing.T) {
	m := NewMask(3, 2)
	m.SetBit(2, 1)
	m.SetBit(5, 5)
	if !m.At(2, 1) {
		t.Error("pixel (2,1) should be opaque")
	}
	if m.At(5, 5) || m.At(-1, 0) {
		t.Error("out of range pixels must be transparent")
	}
}

func TestFillRectOneToOne(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.FillRect(2, 3, 3, 2)
	for py := 0; py < 10; py++ {
		for px := 0; px < 10; px++ {
			want := px >= 2 && px < 5 && py >= 3 && py < 5
			if got := c.Pixel(px, py); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", px, py, got, want)
			}
		}
	}
}

func TestFillRectThinStillVisible(t *testing.T) {
	// 4 logical pixels per terminal pixel horizontally.
	c := NewScaledCanvas(10, 5, 40, 10)
	c.FillRect(8, 0, 2, 1)
	if !c.Pixel(2, 0) {
		t.Error("a rectangle narrower than one terminal pixel should still set one")
	}
}

func TestFillCircle(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.FillCircle(10, 10, 3)
	if !c.Pixel(10, 10) {
		t.Error("centre should be set")
	}
	if c.Pixel(14, 10) || c.Pixel(10, 14) {
		t.Error("pixels beyond the radius should be clear")
	}
	if c.Pixel(0, 0) {
		t.Error("far corner should be clear")
	}
}

func TestFillCircleTinyRadiusSetsCentre(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillCircle(50, 50, 1)
	if !c.Pixel(5, 5) {
		t.Error("a circle smaller than a terminal pixel should set its centre")
	}
}

func TestBlit(t *testing.T) {
	m := NewMask(2, 2)
	m.SetBit(0, 0)
	m.SetBit(1, 1)

	c := NewScaledCanvas(4, 2, 4, 4)
	c.Blit(m, 1, 1)
	if !c.Pixel(1, 1) || !c.Pixel(2, 2) {
		t.Error("opaque mask pixels should be drawn")
	}
	if c.Pixel(2, 1) || c.Pixel(1, 2) {
		t.Error("transparent mask pixels should not be drawn")
	}
}

func TestRenderOnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.Set(0, 0)

	var first bytes.Buffer
	c.Render(&first)
	if !strings.ContainsRune(first.String(), BlockUpperHalf) {
		t.Fatalf("first render should contain an upper half block, got %q", first.String())
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Errorf("unchanged frame should render nothing, got %q", second.String())
	}

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	if !strings.Contains(third.String(), "\033[1;1H ") {
		t.Errorf("cleared cell should be blanked, got %q", third.String())
	}

	c.ForceRedraw()
	var fourth bytes.Buffer
	c.Render(&fourth)
	if strings.Count(fourth.String(), " ") != 8 {
		t.Errorf("forced redraw should rewrite all 8 cells, got %q", fourth.String())
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(3, 4)
	c.Set(1, 1)
	var buf bytes.Buffer
	c.Render(&buf)
	// The blank cell at column 0 moves the cursor; column 1 follows without one.
	if got, want := buf.String(), "\033[5;4H "+string(BlockLowerHalf); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// countingWriter records the size of every write.
type countingWriter struct {
	bytes.Buffer
	writes []int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, len(p))
	return w.Buffer.Write(p)
}

func TestFrameSend(t *testing.T) {
	var out countingWriter
	f := NewFrame(&out)
	f.SetOrigin(2, 1)
	f.Text(1, 1, "hi")
	f.Write([]byte(strings.Repeat("x", 3000)))
	if f.Pending() == 0 {
		t.Fatal("expected pending output")
	}

	if err := f.Send(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "\033[2;3Hhi") {
		t.Errorf("text not placed at the origin: %q", out.String()[:10])
	}
	if out.Len() != len("\033[2;3Hhi")+3000 {
		t.Errorf("sent %d bytes", out.Len())
	}
	for _, n := range out.writes {
		if n > packetSize {
			t.Errorf("write of %d bytes exceeds the packet size", n)
		}
	}
	if f.Pending() != 0 {
		t.Error("frame should be empty after Send")
	}

	out.writes = nil
	if err := f.Send(); err != nil || len(out.writes) != 0 {
		t.Errorf("empty frame wrote %d times, err %v", len(out.writes), err)
	}
}

func TestFrameClear(t *testing.T) {
	var out bytes.Buffer
	f := NewFrame(&out)
	f.Clear()
	f.Send()
	if out.String() != "\033[H\033[2J" {
		t.Errorf("got %q", out.String())
	}
}

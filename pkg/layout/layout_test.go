package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-slidegen/pkg/model"
)

func zptr(v int) *int { return &v }

func TestOrderIsStableAndDefaultsToOne(t *testing.T) {
	elements := []model.Element{
		{ID: "top", Style: model.Style{ZIndex: zptr(10)}},
		{ID: "default-a"},
		{ID: "bottom", Style: model.Style{ZIndex: zptr(0)}},
		{ID: "explicit-one", Style: model.Style{ZIndex: zptr(1)}},
		{ID: "default-b"},
	}

	ordered := Order(elements)
	var ids []string
	for _, el := range ordered {
		ids = append(ids, el.ID)
	}
	want := []string{"bottom", "default-a", "explicit-one", "default-b", "top"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("paint order mismatch (-want +got):\n%s", diff)
	}
	if elements[0].ID != "top" {
		t.Fatalf("Order must not mutate its input")
	}
}

func TestScale(t *testing.T) {
	canvas := model.Size{Width: 1280, Height: 720}
	cases := []struct {
		name      string
		container Container
		want      float64
	}{
		{"no container", Container{}, 1},
		{"width only uses 16:9", Container{Width: 640}, 0.5},
		{"height bound", Container{Width: 1280, Height: 360}, 0.5},
		{"width bound", Container{Width: 320, Height: 720}, 0.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Scale(canvas, tc.container); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}

	portrait := model.Size{Width: 1080, Height: 1920}
	if got := Scale(portrait, Container{Width: 800}); math.Abs(got-450.0/1920) > 1e-9 {
		t.Fatalf("portrait canvas should be height bound, got %v", got)
	}
}

func TestFitLetterboxesPortrait(t *testing.T) {
	fit := Fit(model.Size{Width: 1080, Height: 1920}, model.Size{Width: 960, Height: 540})
	if math.Abs(fit.Scale-540.0/1920) > 1e-9 {
		t.Fatalf("unexpected scale %v", fit.Scale)
	}
	if fit.OffsetY != 0 {
		t.Fatalf("expected no vertical offset, got %v", fit.OffsetY)
	}
	wantX := (960 - 1080*fit.Scale) / 2
	if math.Abs(fit.OffsetX-wantX) > 1e-9 {
		t.Fatalf("expected horizontal centering %v, got %v", wantX, fit.OffsetX)
	}

	box := fit.Apply(Box{X: 0, Y: 0, Width: 1080, Height: 1920})
	if math.Abs(box.X-wantX) > 1e-9 || math.Abs(box.Height-540) > 1e-9 {
		t.Fatalf("unexpected fitted box %+v", box)
	}
}

func TestPercentAndBoxes(t *testing.T) {
	el := model.Element{
		Position: model.Point{X: 450, Y: 180},
		Size:     model.Dimensions{Width: model.Px(480), Height: model.AutoLength()},
	}
	canvas := model.Size{Width: 1200, Height: 720}

	pct := Percent(el, canvas)
	if pct.Left != 37.5 || pct.Top != 25 || pct.Width != 40 || !pct.AutoHeight {
		t.Fatalf("unexpected percent box %+v", pct)
	}

	clamped := BoxFor(el).Clamp(canvas)
	if clamped.Height != 540 || clamped.Width != 480 {
		t.Fatalf("unexpected clamped box %+v", clamped)
	}
}

func TestUnits(t *testing.T) {
	if PxToEMU(96) != EMUPerInch {
		t.Fatalf("96px must be one inch in EMU")
	}
	if PxToInch(1280) != 1280.0/96 {
		t.Fatalf("unexpected inch conversion")
	}
	cases := map[float64]int{22: 17, 8: 10, 200: 96, 40: 30}
	for px, want := range cases {
		if got := FontPoints(px); got != want {
			t.Fatalf("FontPoints(%v): want %d, got %d", px, want, got)
		}
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		argb string
		ok   bool
	}{
		{"#FFD700", "FFFFD700", true},
		{"#fff", "FFFFFFFF", true},
		{"rgba(255, 255, 255, 0.86)", "DBFFFFFF", true},
		{"rgb(0,102,204)", "FF0066CC", true},
		{"#11223380", "80112233", true},
		{"transparent", "00000000", true},
		{"hsl(0, 0%, 0%)", "", false},
		{"#12", "", false},
	}
	for _, tc := range cases {
		c, ok := ParseColor(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseColor(%q) ok=%v, want %v", tc.in, ok, tc.ok)
		}
		if ok && c.ARGB() != tc.argb {
			t.Fatalf("ParseColor(%q) = %s, want %s", tc.in, c.ARGB(), tc.argb)
		}
	}

	half := Color{R: 255, A: 0.5}.Blend(Color{R: 0, G: 0, B: 0, A: 1})
	if half.R != 128 || half.A != 1 {
		t.Fatalf("unexpected blend %+v", half)
	}
}

package layout_test

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/wordcloud/pkg/layout"
)

func ExampleRotation() {
	for _, o := range []layout.Orientation{
		layout.OrientationSingle,
		layout.OrientationRightAngled,
		layout.OrientationMultiple,
	} {
		fmt.Printf("%-12s a=%v b=%v\n", o, layout.Rotation("a", o), layout.Rotation("b", o))
	}
	// Output:
	// single       a=0 b=0
	// right angled a=90 b=0
	// multiple     a=-45 b=60
}

func ExampleNewSizeMapper() {
	words := []layout.Word{
		{RawText: "go", Value: 100},
		{RawText: "rust", Value: 25},
		{RawText: "zig", Value: 0},
	}
	m := layout.NewSizeMapper(words, layout.ScaleSqrt, 10, 50)
	for _, w := range words {
		fmt.Printf("%s: %.0fpx\n", w.RawText, m.Size(w.Value))
	}
	// Output:
	// go: 50px
	// rust: 30px
	// zig: 10px
}

func ExamplePlace() {
	words := []layout.Word{
		{RawText: "a", Value: 10},
		{RawText: "b", Value: 1},
	}
	m := layout.NewSizeMapper(words, layout.ScaleLinear, 18, 72)
	t0 := time.Unix(0, 0)

	res, err := layout.Place(context.Background(), words, m.SizeFunc(), layout.Config{
		Width:       400,
		Height:      400,
		Orientation: layout.OrientationSingle,
		Now:         func() time.Time { return t0 },
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("placed %d of %d\n", res.Placed, len(words))
	for _, w := range res.Words {
		fmt.Printf("%s: size=%v rotation=%v\n", w.RawText, w.Size, w.Rotation)
	}
	// Output:
	// placed 2 of 2
	// a: size=72 rotation=0
	// b: size=18 rotation=0
}

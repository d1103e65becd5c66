package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-mmcc/dsp/filter/biquad"
	"github.com/cwbudde/algo-mmcc/dsp/filter/design"
)

func ExampleButterworthLP() {
	coeffs := design.ButterworthLP(1000, 4, 48000)
	chain := biquad.NewChain(coeffs)

	fmt.Printf("sections=%d order=%d\n", len(coeffs), chain.Order())
	fmt.Printf("1000 Hz:  %.2f dB\n", chain.MagnitudeDB(1000, 48000))
	// Output:
	// sections=2 order=4
	// 1000 Hz:  -3.01 dB
}

func ExampleButterworthBandpass() {
	coeffs, err := design.ButterworthBandpass(1, 10, 4, 100)
	if err != nil {
		fmt.Println(err)
		return
	}

	_, err = design.ButterworthBandpass(10, 1, 4, 100)
	fmt.Println(len(coeffs), err != nil)
	// Output:
	// 4 true
}

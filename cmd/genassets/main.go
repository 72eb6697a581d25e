package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/isoscene/internal/placeholders"
)

func main() {
	out := flag.String("out", "assets", "directory to write the PNGs into")
	flag.Parse()

	fmt.Println("isoscene placeholder asset generator")
	fmt.Println("====================================")
	fmt.Println()

	if err := placeholders.GenerateAndSave(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! Run isoscene to see the scene.")
}

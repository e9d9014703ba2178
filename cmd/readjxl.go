package main

import (
	"fmt"
	"os"

	"github.com/kpfaulkner/jxlstream/core"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Printf("So it begins...\n")

	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	defer p.Stop()

	f, err := os.Open(`c:\temp\lossless.jxl`)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	defer f.Close()

	jxl := core.NewJXLDecoder(f, nil)
	if _, err := jxl.Decode(); err != nil {
		fmt.Printf("Error decoding: %v\n", err)
	} else {
		fmt.Printf("Decoded successfully\n")
	}
}

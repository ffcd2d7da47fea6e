package main

import (
	"fmt"
	"os"

	"github.com/Fasscorp/Fassimo/services/onboard"
)

func main() {
	if err := onboard.Command().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

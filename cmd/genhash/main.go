package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Hashes an access code for use in ACCESS_CODES, e.g.:
//
//	go run ./cmd/genhash 0802
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <access-code>")
		os.Exit(1)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), 12)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}

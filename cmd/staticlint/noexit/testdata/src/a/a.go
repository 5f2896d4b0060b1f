package main

import (
	"log"
	"os"
)

func main() {
	defer println("cleanup")

	if len(os.Args) > 3 {
		log.Fatal("too many arguments") // want `вызов log.Fatal в main запрещён`
	}
	if len(os.Args) > 2 {
		log.Fatalf("bad args: %v", os.Args) // want `вызов log.Fatalf в main запрещён`
	}
	os.Exit(1) // want `вызов os.Exit в main запрещён`
}

func helper() {
	os.Exit(2)
}

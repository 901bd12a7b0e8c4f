package main

import (
	"newswave/cmd/handlers"
)

func main() {
	handlers.Execute()
}

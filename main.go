package main

import (
	"github.com/shouni/go-url-scan/cmd"
)

func main() {
	cmd.Execute()
}

// Command metcolour classifies the colours of museum collection images.
package main

import "github.com/anatolykoptev/go-metcolour/internal/cli"

func main() {
	cli.Execute()
}

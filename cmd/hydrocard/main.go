// Command hydrocard reads and writes GSSHA storm pipe network and WMS
// dataset files.
package main

import "github.com/mesh-intelligence/hydrocard/internal/cli"

func main() {
	cli.Execute()
}

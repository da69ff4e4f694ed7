// Command larder runs scenario scripts against an in-memory entity store.
package main

import "github.com/mesh-intelligence/larder/internal/cli"

func main() {
	cli.Execute()
}

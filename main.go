// Vitrine renders very large image galleries progressively: items are revealed batch by batch
// as the viewer gets close to the end of the content, and the image behind each item is loaded
// with bounded concurrency, retries and a placeholder fallback.
package main

import (
	"fmt"
	"os"

	"github.com/internetarchive/Vitrine/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// zodgen generates Zod validation schemas from a declarative data-model
// document. The command owns all file I/O; the generation core under
// compiler/ is pure and returns the document text in memory.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zodgen:", err)
		os.Exit(1)
	}
}

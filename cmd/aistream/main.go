// Command aistream streams completions from the supported LLM providers and
// inspects the resolved provider configuration.
//
// Credentials come from a YAML config file (--config or AISTREAM_CONFIG), the
// AISTREAM_PROVIDERS_<ID>_API_KEY variables, or plain <ID>_API_KEY variables,
// in that order. A .env file in the working directory is loaded first.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle(os.Stderr).Render("error: "+err.Error()))
		os.Exit(1)
	}
}

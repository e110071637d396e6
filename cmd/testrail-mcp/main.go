// testrail-mcp serves the TestRail API as MCP tools on stdin/stdout.
package main

import "github.com/contenox/testrail-mcp/internal/gatewaycli"

func main() {
	gatewaycli.Main()
}

package banner

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"aura/pkg/store"
)

const banner = `
 █████╗ ██╗   ██╗██████╗  █████╗
██╔══██╗██║   ██║██╔══██╗██╔══██╗
███████║██║   ██║██████╔╝███████║
██╔══██║██║   ██║██╔══██╗██╔══██║
██║  ██║╚██████╔╝██║  ██║██║  ██║
╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝
`

func Print(addr, dbPath, sources, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:   %s\n", addr)
	fmt.Printf("DB Path:  %s (%s on disk)\n", dbPath, humanize.Bytes(store.DiskUsage()))
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	if sources != "" {
		fmt.Printf("Config sources: %s\n", sources)
	}
	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("GET  /v1/contacts                          - Roster with previews")
	fmt.Println("POST /v1/conversations/{id}/messages       - Send a message (a reply will follow)")
	fmt.Println("GET  /v1/conversations/{id}/typing         - Reply pending?")
	fmt.Println("GET  /v1/artifacts                         - Crystallized memories")
	fmt.Println("POST /v1/scheduled                         - Schedule a future send")
	fmt.Println("\n== Examples ===================================================")
	fmt.Printf("curl -X POST 'http://localhost%s/v1/conversations/c1/messages' -d '{\"text\":\"Hello\"}'\n", addr)
	fmt.Printf("curl 'http://localhost%s/v1/conversations/c1/messages'\n", addr)
	fmt.Println()
}

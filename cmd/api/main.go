package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	_ "github.com/Flarenzy/ipam-ledger/docs"
	"github.com/Flarenzy/ipam-ledger/internal/app"
)

//	@title			IPAM Ledger API
//	@version		1.0
//	@description	Hierarchical IPv4 address-space allocator with a persistent
//	@description	allocation ledger and utilization reporting.
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:4040
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := api.LoadConfig()

	if err := api.Run(ctx, cfg); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

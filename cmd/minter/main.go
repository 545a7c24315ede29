package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ipasset-labs/nft-minter/internal/adapter"
	"github.com/ipasset-labs/nft-minter/internal/config"
	"github.com/ipasset-labs/nft-minter/internal/domain"
	"github.com/ipasset-labs/nft-minter/internal/logger"
	"github.com/ipasset-labs/nft-minter/internal/messaging"
	"github.com/ipasset-labs/nft-minter/internal/mint"
	"github.com/ipasset-labs/nft-minter/internal/ownership"
	"github.com/ipasset-labs/nft-minter/internal/providers/ethereum"
	"github.com/ipasset-labs/nft-minter/internal/providers/jetstream"
	"github.com/ipasset-labs/nft-minter/internal/providers/pinata"
	"github.com/ipasset-labs/nft-minter/internal/store"
)

var (
	configPath = flag.String("config", "", "Path to configuration file (searched in ., cmd/minter/, config/ when omitted)")
	envPath    = flag.String("env", "", "Path to .env file")
)

const usage = `Usage: minter [flags] <command> [arguments]

Commands:
  mint        -asset <uuid> -to <address> -operator <uuid>
  batch-mint  -assets <uuid,uuid,...> -to <address> -operator <uuid>
  retry       -asset <uuid> -operator <uuid> [-to <address>]
  status      -asset <uuid>
  history     -asset <uuid> [-limit N] [-offset N]
  transfer    -token <id> -to <address> -operator <uuid> [-to-enterprise <uuid>] [-remarks <text>]
  set-status  -token <id> -status <LICENSED|STAKED|ACTIVE> -operator <uuid> [-remarks <text>]
  transfers   -token <id> [-limit N] [-offset N]
  assets      -enterprise <uuid> [-limit N] [-offset N] [-search <text>]
  stats       -enterprise <uuid>
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	config.ChdirRepoRoot()

	cfg, err := config.LoadMinterConfig(*configPath, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		ServiceName:     "minter",
		Environment:     cfg.Environment,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	// Connect to database
	db, err := gorm.Open(pgdriver.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db,
		cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.Pinata.Timeout)

	// Initialize chain gateway
	ethClient, err := ethclient.Dial(cfg.Ethereum.RPCURL)
	if err != nil {
		logger.Fatal("Failed to dial Ethereum RPC", zap.Error(err), zap.String("rpc_url", cfg.Ethereum.RPCURL))
	}
	defer ethClient.Close()
	gateway, err := ethereum.NewGateway(cfg.Ethereum, ethClient)
	if err != nil {
		logger.Fatal("Failed to create chain gateway", zap.Error(err))
	}

	// Initialize content store
	contentStore := pinata.NewClient(pinata.Config{
		APIURL: cfg.Pinata.APIURL,
		JWT:    cfg.Pinata.JWT,
	}, httpClient)

	// Initialize event publisher; minting proceeds without one
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer publisher.Close()
	} else {
		logger.Warn("NATS URL not configured, asset events will not be published")
	}

	orchestrator := mint.NewOrchestrator(dataStore, contentStore, gateway, publisher,
		mint.NewAttemptCountPolicy(), clockAdapter, cfg.Mint.CallTimeout)
	batch := mint.NewBatchCoordinator(orchestrator, cfg.Worker.PoolSize, cfg.Worker.QueueSize)
	defer batch.Close()
	ownershipService := ownership.NewService(dataStore, gateway, publisher, clockAdapter, cfg.Ethereum.ConfirmTimeout)

	cmd := command{
		orchestrator: orchestrator,
		batch:        batch,
		ownership:    ownershipService,
	}

	if err := cmd.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		logger.Error(err, zap.String("command", flag.Arg(0)))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type command struct {
	orchestrator *mint.Orchestrator
	batch        *mint.BatchCoordinator
	ownership    *ownership.Service
}

func (c *command) run(ctx context.Context, name string, args []string) error {
	switch name {
	case "mint":
		return c.mint(ctx, args)
	case "batch-mint":
		return c.batchMint(ctx, args)
	case "retry":
		return c.retry(ctx, args)
	case "status":
		return c.status(ctx, args)
	case "history":
		return c.history(ctx, args)
	case "transfer":
		return c.transfer(ctx, args)
	case "set-status":
		return c.setStatus(ctx, args)
	case "transfers":
		return c.transfers(ctx, args)
	case "assets":
		return c.assets(ctx, args)
	case "stats":
		return c.stats(ctx, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", name)
	}
}

func (c *command) mint(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mint", flag.ExitOnError)
	assetArg := fs.String("asset", "", "Asset ID")
	to := fs.String("to", "", "Recipient wallet address")
	operatorArg := fs.String("operator", "", "Operator user ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	assetID, err := parseUUID("asset", *assetArg)
	if err != nil {
		return err
	}
	operatorID, err := parseUUID("operator", *operatorArg)
	if err != nil {
		return err
	}
	if *to == "" {
		return fmt.Errorf("-to is required")
	}

	result, err := c.orchestrator.Mint(ctx, assetID, *to, operatorID)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func (c *command) batchMint(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("batch-mint", flag.ExitOnError)
	assetsArg := fs.String("assets", "", "Comma-separated asset IDs")
	to := fs.String("to", "", "Recipient wallet address")
	operatorArg := fs.String("operator", "", "Operator user ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	operatorID, err := parseUUID("operator", *operatorArg)
	if err != nil {
		return err
	}
	if *to == "" {
		return fmt.Errorf("-to is required")
	}

	var assetIDs []uuid.UUID
	for _, raw := range strings.Split(*assetsArg, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid asset id %q: %w", raw, err)
		}
		assetIDs = append(assetIDs, id)
	}

	result, err := c.batch.BatchMint(ctx, assetIDs, *to, operatorID)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func (c *command) retry(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("retry", flag.ExitOnError)
	assetArg := fs.String("asset", "", "Asset ID")
	to := fs.String("to", "", "Recipient wallet address (defaults to the previous attempt's)")
	operatorArg := fs.String("operator", "", "Operator user ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	assetID, err := parseUUID("asset", *assetArg)
	if err != nil {
		return err
	}
	operatorID, err := parseUUID("operator", *operatorArg)
	if err != nil {
		return err
	}

	result, err := c.orchestrator.RetryMint(ctx, assetID, *to, operatorID)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func (c *command) status(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	assetArg := fs.String("asset", "", "Asset ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	assetID, err := parseUUID("asset", *assetArg)
	if err != nil {
		return err
	}

	snapshot, err := c.orchestrator.MintStatus(ctx, assetID)
	if err != nil {
		return err
	}
	return printJSON(snapshot)
}

func (c *command) history(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	assetArg := fs.String("asset", "", "Asset ID")
	limit := fs.Int("limit", 20, "Page size")
	offset := fs.Uint64("offset", 0, "Page offset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	assetID, err := parseUUID("asset", *assetArg)
	if err != nil {
		return err
	}

	records, total, err := c.orchestrator.MintHistory(ctx, assetID, *limit, *offset)
	if err != nil {
		return err
	}
	return printJSON(map[string]interface{}{"total": total, "records": records})
}

func (c *command) transfer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	tokenArg := fs.String("token", "", "Token ID")
	to := fs.String("to", "", "Receiving wallet address")
	toEnterpriseArg := fs.String("to-enterprise", "", "Receiving enterprise ID (omit for off-platform transfers)")
	operatorArg := fs.String("operator", "", "Operator user ID")
	remarks := fs.String("remarks", "", "Operator note")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tokenID, err := parseTokenID(*tokenArg)
	if err != nil {
		return err
	}
	operatorID, err := parseUUID("operator", *operatorArg)
	if err != nil {
		return err
	}
	if *to == "" {
		return fmt.Errorf("-to is required")
	}

	input := ownership.TransferInput{
		TokenID:        tokenID,
		ToAddress:      *to,
		OperatorUserID: operatorID,
	}
	if *toEnterpriseArg != "" {
		toEnterpriseID, err := parseUUID("to-enterprise", *toEnterpriseArg)
		if err != nil {
			return err
		}
		input.ToEnterpriseID = &toEnterpriseID
	}
	if *remarks != "" {
		input.Remarks = remarks
	}

	outcome, err := c.ownership.Transfer(ctx, input)
	if err != nil {
		return err
	}
	return printJSON(outcome)
}

func (c *command) setStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("set-status", flag.ExitOnError)
	tokenArg := fs.String("token", "", "Token ID")
	statusArg := fs.String("status", "", "New ownership status (LICENSED, STAKED, ACTIVE)")
	operatorArg := fs.String("operator", "", "Operator user ID")
	remarks := fs.String("remarks", "", "Operator note")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tokenID, err := parseTokenID(*tokenArg)
	if err != nil {
		return err
	}
	operatorID, err := parseUUID("operator", *operatorArg)
	if err != nil {
		return err
	}

	input := ownership.StatusChangeInput{
		TokenID:        tokenID,
		NewStatus:      domain.OwnershipStatus(*statusArg),
		OperatorUserID: operatorID,
	}
	if *remarks != "" {
		input.Remarks = remarks
	}

	record, err := c.ownership.UpdateOwnershipStatus(ctx, input)
	if err != nil {
		return err
	}
	return printJSON(record)
}

func (c *command) transfers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("transfers", flag.ExitOnError)
	tokenArg := fs.String("token", "", "Token ID")
	limit := fs.Int("limit", 20, "Page size")
	offset := fs.Uint64("offset", 0, "Page offset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tokenID, err := parseTokenID(*tokenArg)
	if err != nil {
		return err
	}

	records, total, err := c.ownership.TransferHistory(ctx, tokenID, *limit, *offset)
	if err != nil {
		return err
	}
	return printJSON(map[string]interface{}{"total": total, "records": records})
}

func (c *command) assets(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("assets", flag.ExitOnError)
	enterpriseArg := fs.String("enterprise", "", "Enterprise ID")
	limit := fs.Int("limit", 20, "Page size")
	offset := fs.Uint64("offset", 0, "Page offset")
	search := fs.String("search", "", "Name search")
	if err := fs.Parse(args); err != nil {
		return err
	}

	enterpriseID, err := parseUUID("enterprise", *enterpriseArg)
	if err != nil {
		return err
	}

	filter := store.EnterpriseAssetFilter{
		EnterpriseID: enterpriseID,
		Limit:        *limit,
		Offset:       *offset,
	}
	if *search != "" {
		filter.Search = search
	}

	assets, total, err := c.ownership.EnterpriseAssets(ctx, filter)
	if err != nil {
		return err
	}
	return printJSON(map[string]interface{}{"total": total, "assets": assets})
}

func (c *command) stats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	enterpriseArg := fs.String("enterprise", "", "Enterprise ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	enterpriseID, err := parseUUID("enterprise", *enterpriseArg)
	if err != nil {
		return err
	}

	stats, err := c.ownership.EnterpriseStats(ctx, enterpriseID)
	if err != nil {
		return err
	}
	return printJSON(stats)
}

func parseUUID(name, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, fmt.Errorf("-%s is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid -%s %q: %w", name, raw, err)
	}
	return id, nil
}

func parseTokenID(raw string) (uint64, error) {
	if raw == "" {
		return 0, fmt.Errorf("-token is required")
	}
	tokenID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid -token %q: %w", raw, err)
	}
	return tokenID, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

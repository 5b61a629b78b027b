package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"gitlab.com/cptmarket/rental-router/internal/config"
	"gitlab.com/cptmarket/rental-router/internal/contractmanager"
	"gitlab.com/cptmarket/rental-router/internal/documents"
	"gitlab.com/cptmarket/rental-router/internal/handlers/httphandlers"
	"gitlab.com/cptmarket/rental-router/internal/lib"
	"gitlab.com/cptmarket/rental-router/internal/pinning"
	"gitlab.com/cptmarket/rental-router/internal/repositories/rental"
	"gitlab.com/cptmarket/rental-router/internal/repositories/store"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	var cfg config.Config
	err := config.LoadConfig(&cfg, &os.Args)
	if err != nil {
		panic(err)
	}
	cfg.SetDefaults()

	log, err := lib.NewLogger(cfg.Log.LevelApp, cfg.Log.Color, cfg.Log.IsProd, cfg.Log.JSON, "")
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Infof("version: %s, environment: %s", config.BuildVersion, cfg.Environment)
	log.Debugf("config loaded: %+v", cfg.GetSanitized())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-shutdownChan
		log.Warnf("Received signal: %s", s)
		cancel()

		s = <-shutdownChan
		log.Warnf("Received signal: %s. Forcing exit...", s)
		os.Exit(1)
	}()

	ethClient, err := rental.DialContext(ctx, cfg.Blockchain.EthNodeAddress)
	if err != nil {
		log.Fatalf("cannot connect to ethereum node: %s", err)
	}
	log.Infof("connected to ethereum node: %s", ethClient.URL())

	monitor := rental.NewNodeMonitor(ethClient, cfg.Blockchain.NodeCheckInterval, log.Named("MONITOR"))

	gateway := rental.NewRentalEthereum(
		common.HexToAddress(cfg.Blockchain.TokenAddress),
		common.HexToAddress(cfg.Blockchain.FactoryAddress),
		cfg.Blockchain.GasLimit,
		ethClient,
		monitor,
		log.Named("ETH"),
	)
	gateway.SetLegacyTx(cfg.Blockchain.EthLegacyTx)

	var wallet *rental.Wallet
	if cfg.Marketplace.WalletPrivateKey != "" {
		wallet, err = rental.NewWalletFromPrivateKey(cfg.Marketplace.WalletPrivateKey)
	} else {
		wallet, err = rental.NewWalletFromMnemonic(cfg.Marketplace.Mnemonic, 0)
	}
	if err != nil {
		log.Fatalf("cannot load operator wallet: %s", err)
	}
	log.Infof("operator address: %s", wallet.GetAccountAddress())

	db, err := store.Connect(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatalf("cannot connect to database: %s", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("cannot ensure database schema: %s", err)
	}

	cars := store.NewCarRepository(db)
	users := store.NewUserRepository(db)
	wallets := store.NewWalletRepository(db)
	contracts := store.NewContractRepository(db)

	docs := documents.NewGenerator(cfg.Documents.Dir)
	pinner := pinning.NewClient(cfg.Pinning.Endpoint, cfg.Pinning.GatewayURL, cfg.Pinning.APIToken)

	manager := contractmanager.NewAgreementManager(
		cfg.Blockchain.TokenAddress,
		gateway,
		contracts,
		docs,
		pinner,
		wallet,
		log.Named("MANAGER"),
	)

	router := httphandlers.NewHTTPHandler(manager, gateway, cars, users, wallets, db, log.Named("HTTP"))

	server := &http.Server{
		Addr:    cfg.Web.Address,
		Handler: router,
	}

	g, errCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("http server is listening: %s", cfg.Web.Address)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-errCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Infof("App exited due to %s", err)
}

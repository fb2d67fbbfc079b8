package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatapp-client/internal/api"
	"chatapp-client/internal/devserver"
	"chatapp-client/internal/gateway"
	"chatapp-client/internal/mockdata"
	"chatapp-client/internal/models"
	"chatapp-client/internal/store"
	"chatapp-client/internal/wire"

	"go.uber.org/zap"
)

type ConfigFile struct {
	Address       string
	Port          string
	ApiBaseURL    string
	SelfContained bool
}

const demoPassword = "Password1"

func setupLogger() (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func readConfigFile() (ConfigFile, error) {
	cfg := ConfigFile{
		Address:       "localhost",
		Port:          "8080",
		SelfContained: true,
	}

	configFile, err := os.Open("config.json")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	defer configFile.Close()

	bytes, err := io.ReadAll(configFile)
	if err != nil {
		return cfg, err
	}

	err = json.Unmarshal(bytes, &cfg)
	return cfg, err
}

func main() {
	sugar, err := setupLogger()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer sugar.Sync()

	cfg, err := readConfigFile()
	if err != nil {
		sugar.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	address := fmt.Sprintf("%s:%s", cfg.Address, cfg.Port)

	var backend *http.Server
	if cfg.SelfContained {
		dev, err := devserver.New(sugar)
		if err != nil {
			sugar.Fatal(err)
		}
		if err := dev.Seed(mockdata.Generate(time.Now()), demoPassword); err != nil {
			sugar.Fatal(err)
		}

		backend = &http.Server{Addr: address, Handler: dev.Handler()}
		go func() {
			sugar.Infof("Self-contained backend is running on http://%s", address)
			if err := backend.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				sugar.Fatal(err)
			}
		}()
	}

	baseURL := cfg.ApiBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://%s/api", address)
	}

	client := api.New(baseURL, sugar)
	auth := store.NewAuth(client, sugar)
	servers := store.NewServers(sugar)
	messages := store.NewMessages(sugar)
	ui := store.NewUI()

	unsubscribe := messages.Subscribe(func() {
		sugar.Debug("Message state changed")
	})
	defer unsubscribe()

	runSession(ctx, sugar, address, client, auth, servers, messages, ui)

	<-ctx.Done()
	sugar.Info("Shutting down...")

	if backend != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := backend.Shutdown(shutdownCtx); err != nil {
			sugar.Error(err)
		}
	}
}

// runSession logs in against the configured backend and drives one short
// demo exchange over the gateway. Without a reachable backend it falls back
// to the mock dataset so the state layer can still be poked at.
func runSession(ctx context.Context, sugar *zap.SugaredLogger, address string, client *api.Client, auth *store.Auth, servers *store.Servers, messages *store.Messages, ui *store.UI) {
	if err := auth.Login(ctx, "demo@example.com", demoPassword); err != nil {
		sugar.Warnf("Login failed (%s), falling back to mock data", auth.LastError())
		auth.LoginMock()
		data := mockdata.Generate(time.Now())
		servers.LoadMockData(data)
		messages.LoadMockMessages(data)
	} else if err := hydrate(ctx, client, servers, messages); err != nil {
		sugar.Error(err)
		return
	}

	user, _ := auth.User()
	sugar.Infof("Logged in as [%s]", user.Username)

	if expiry, ok := auth.TokenExpiresAt(); ok {
		sugar.Debugf("Access token expires at %s", expiry.Format(time.RFC3339))
	}

	ui.SetViewMode(store.ViewServers)
	ui.ToggleMemberList()

	channelID := servers.ActiveChannelID()
	if channelID == "" {
		sugar.Warn("No active channel to chat in")
		return
	}

	if auth.Token() == store.MockToken {
		// no live feed in mock mode; mutate the store directly
		messages.AddMessage(demoMessage(user, channelID))
		sugar.Infof("Channel [%s] now holds %d messages", channelID, len(messages.ChannelMessages(channelID)))
		return
	}

	gw := gateway.New(servers, messages, sugar)
	if err := gw.Dial(ctx, fmt.Sprintf("ws://%s/ws", address), auth.Token()); err != nil {
		sugar.Error(err)
		return
	}
	defer gw.Close()

	if err := gw.Send(wire.StartTyping{ChannelID: channelID}); err != nil {
		sugar.Error(err)
		return
	}
	if err := gw.Send(wire.SendMessage{ChannelID: channelID, Content: "Hello from the demo session"}); err != nil {
		sugar.Error(err)
		return
	}

	// give the echo a moment to arrive
	time.Sleep(500 * time.Millisecond)
	sugar.Infof("Channel [%s] now holds %d messages", channelID, len(messages.ChannelMessages(channelID)))
}

// hydrate pulls the catalog and message history into the stores and focuses
// the first server.
func hydrate(ctx context.Context, client *api.Client, servers *store.Servers, messages *store.Messages) error {
	serverList, err := client.Servers(ctx)
	if err != nil {
		return err
	}

	for _, server := range serverList {
		servers.AddServer(server)

		channels, err := client.Channels(ctx, server.ID)
		if err != nil {
			return err
		}
		for _, channel := range channels {
			servers.AddChannel(channel)

			history, err := client.Messages(ctx, channel.ID, "")
			if err != nil {
				return err
			}
			for _, msg := range history {
				messages.AddMessage(msg)
			}
		}

		members, err := client.ServerMembers(ctx, server.ID)
		if err != nil {
			return err
		}
		for _, member := range members {
			servers.AddMember(server.ID, member)
		}
	}

	if len(serverList) > 0 {
		servers.SetActiveServer(serverList[0].ID)
	}
	return nil
}

func demoMessage(author models.User, channelID string) models.Message {
	return models.Message{
		ID:        fmt.Sprintf("local-%d", time.Now().UnixMilli()),
		ChannelID: channelID,
		Author:    author,
		Content:   "Hello from the demo session",
		CreatedAt: time.Now(),
	}
}

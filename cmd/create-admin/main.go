// create-admin создает учетную запись администратора в настроенном хранилище.
//
//	create-admin -username admin -password 's3cret-pass'
//
// Пароль можно передать через ADMIN_PASSWORD, чтобы он не попал в историю shell.
package main

import (
	"brokerage-service/internal"
	"brokerage-service/internal/configs"
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/usecase"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	username := flag.String("username", "", "admin username (defaults to ADMIN_USERNAME)")
	password := flag.String("password", "", "admin password (defaults to ADMIN_PASSWORD)")
	envFile := flag.String("env", "", "path to .env file")
	flag.Parse()

	var (
		appConfig *configs.AppConfig
		err       error
	)
	if *envFile != "" {
		appConfig, err = configs.LoadConfig(*envFile)
	} else {
		appConfig, err = configs.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		return 1
	}
	if *username == "" {
		*username = appConfig.Auth.AdminUsername
	}
	if *password == "" {
		*password = appConfig.Auth.AdminPassword
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "username and password are required")
		flag.Usage()
		return 2
	}

	logger, fluentClient, err := internal.NewLogger(appConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		return 1
	}
	if fluentClient != nil {
		defer fluentClient.Close()
	}
	logger = logger.WithFields(port.Fields{"component": "create-admin"})
	ctx := contextkeys.ContextWithLogger(context.Background(), logger)

	// демо-объекты при создании администратора не засеваем
	storeCfg := appConfig.Store
	storeCfg.SeedSampleProperties = false
	store, err := internal.OpenStore(ctx, storeCfg, nil, logger)
	if err != nil {
		logger.Error("Failed to open store", err, nil)
		return 1
	}
	defer store.Close()

	user, err := usecase.NewCreateUserUseCase(store).Execute(ctx, *username, *password)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			fmt.Fprintf(os.Stderr, "user %q already exists\n", *username)
			return 1
		}
		logger.Error("Failed to create admin", err, nil)
		return 1
	}

	fmt.Printf("admin %q created with id %s\n", user.Username, user.ID)
	return 0
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/cyber-pit/internal/config"
	accountrepo "github.com/KirkDiggler/cyber-pit/internal/repositories/account"
)

// Scans stored accounts for records that no longer decode and for robots
// whose build is missing from the catalog. Broken records can be deleted;
// orphaned robots are cleared so the player can buy again.
func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	catalog, err := config.DefaultCatalog()
	if path := os.Getenv("CATALOG"); path != "" {
		catalog, err = config.LoadCatalog(path)
	}
	if err != nil {
		log.Fatal("Failed to load catalog:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	fmt.Println("Connected to Redis:", redisURL)

	var broken []string
	orphaned := map[string]*accountrepo.Account{}
	checked := 0

	iter := client.Scan(ctx, 0, "account:*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		checked++

		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var acc accountrepo.Account
		if err := sonic.Unmarshal(data, &acc); err != nil || acc.Username == "" {
			fmt.Printf("x undecodable account in %s\n", key)
			broken = append(broken, key)
			continue
		}

		if acc.HasRobot() {
			if _, err := catalog.Template(acc.RobotBuild); err != nil {
				fmt.Printf("x %s owns %s of unknown build %q\n", acc.Username, acc.RobotName, acc.RobotBuild)
				orphaned[key] = &acc
			}
		}
	}
	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d accounts: %d undecodable, %d with unknown builds\n", checked, len(broken), len(orphaned))
	if len(broken) == 0 && len(orphaned) == 0 {
		return
	}

	fmt.Print("\nDelete undecodable accounts and clear unknown robots? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)
	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range broken {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
			continue
		}
		fmt.Printf("Deleted %s\n", key)
	}

	for key, acc := range orphaned {
		acc.RobotID, acc.RobotName, acc.RobotBuild = "", "", ""
		data, err := sonic.Marshal(acc)
		if err != nil {
			fmt.Printf("Failed to encode %s: %v\n", key, err)
			continue
		}
		if err := client.Set(ctx, key, data, 0).Err(); err != nil {
			fmt.Printf("Failed to update %s: %v\n", key, err)
			continue
		}
		fmt.Printf("Cleared robot of %s\n", acc.Username)
	}
}

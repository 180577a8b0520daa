// Package redis opens go-redis clients from environment configuration.
//
// The client backs the shared idempotency cache when REDIS_URL is set:
//
//	var cfg redis.Config // parsed with envPrefix "REDIS_"
//	client, err := redis.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	app := deliverkit.New(
//		deliverkit.WithHealthChecks(deliverkit.WithReadinessCheck("redis", redis.Healthcheck(client))),
//	)
//	app.Run(addr, deliverkit.ShutdownHook(redis.Shutdown(client)))
//
// Open pings the server before returning and retries failed attempts,
// waiting RetryInterval, then twice that, and so on.
package redis

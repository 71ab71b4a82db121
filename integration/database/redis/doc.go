// Package redis creates go-redis clients and exposes a readiness check for them.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	checks = append(checks, redis.Healthcheck(client))
//
// Both redis:// and rediss:// URLs are accepted.
package redis

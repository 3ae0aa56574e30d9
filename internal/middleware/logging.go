package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Logging middleware that logs status, response time, route and response size.
// Websocket connections are logged when they close, so their latency is the session length.
func Logging() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} | ${path} | ${bytesSent}B\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		CustomTags: map[string]logger.LogFunc{
			"latency": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				latency := data.Stop.Sub(data.Start)
				if latency >= time.Second {
					return fmt.Fprintf(output, "%6.1fs ", latency.Seconds())
				}
				return fmt.Fprintf(output, "%6.1fms", float64(latency.Nanoseconds())/float64(time.Millisecond))
			},
		},
	})
}

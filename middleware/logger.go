package middleware

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

func Logger() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    io.Discard,
		SkipPaths: []string{"/health"},
		Formatter: func(param gin.LogFormatterParams) string {
			actor := "-"
			if v, ok := param.Keys[contextUserKey]; ok {
				if u, ok := v.(interface{ String() string }); ok {
					actor = u.String()
				}
			}

			logFormat := fmt.Sprintf("[%s] %s %s %d %s %s %s\n",
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.StatusCode,
				param.Latency,
				param.ClientIP,
				actor,
			)
			log.Print(logFormat)

			return logFormat
		},
	})
}

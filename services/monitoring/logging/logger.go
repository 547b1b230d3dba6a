package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"log/syslog"
	"time"

	"github.com/CoinKeep/CoinKeep-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logrusSyslog "github.com/sirupsen/logrus/hooks/syslog"
)

type Logger struct {
	*logrus.Logger
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func NewLogger(c *utils.Config) *Logger {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.JSONFormatter{})

	if c != nil && c.SyslogAddr != "" {
		hook, err := logrusSyslog.NewSyslogHook("udp", c.SyslogAddr, syslog.LOG_INFO, c.SyslogAppName)
		if err != nil {
			log.Error("Unable to connect to syslog endpoint")
		} else {
			log.Hooks.Add(hook)
		}
	}

	return &Logger{
		log,
	}
}

func (l *Logger) LoggingMiddleWare() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = c.GetRawData()
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   statusCode,
			"duration": duration,
		}

		if requestID := c.GetString("request_id"); requestID != "" {
			fields["request_id"] = requestID
		}

		// Only log request body if it's small to avoid polluting logs with
		// large payloads
		if len(requestBody) > 0 && len(requestBody) < 250 {
			var requestJson interface{}
			if err := json.Unmarshal(requestBody, &requestJson); err != nil {
				l.Log(logrus.DebugLevel, "error unmarshalling requestBody, request may not be JSON")
			} else {
				fields["request"] = requestJson
			}
		}

		l.WithFields(fields).Info("Request-Response")
	}
}

package report

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pontem-network/flashloan-loadgen/config"
	"github.com/pontem-network/flashloan-loadgen/log"
)

type SinkProvider string

const (
	SinkLog   SinkProvider = "log"
	SinkRedis SinkProvider = "redis"
)

func (p SinkProvider) String() string {
	return string(p)
}

const (
	cfgReportSink      = "report.sink"
	cfgReportRedisAddr = "report.redis.addr"
	cfgReportRedisKey  = "report.redis.key"
)

type Config struct {
	Sink      SinkProvider
	RedisAddr string
	RedisKey  string
}

func (c *Config) Log(fields log.Fields) {
	fields.Add(cfgReportSink, c.Sink)
	if c.Sink == SinkRedis {
		fields.Add(cfgReportRedisAddr, c.RedisAddr)
		fields.Add(cfgReportRedisKey, c.RedisKey)
	}
}

func (c *Config) Configure(v *viper.Viper) error {
	c.Sink = SinkProvider(v.GetString(cfgReportSink))
	if len(c.Sink) == 0 {
		c.Sink = SinkLog
	}

	c.RedisAddr = v.GetString(cfgReportRedisAddr)
	c.RedisKey = v.GetString(cfgReportRedisKey)

	switch c.Sink {
	case SinkLog:
		return nil
	case SinkRedis:
		if len(c.RedisAddr) == 0 {
			return config.ErrKeyNotSet{Key: cfgReportRedisAddr}
		}
		if len(c.RedisKey) == 0 {
			return config.ErrKeyNotSet{Key: cfgReportRedisKey}
		}
		return nil
	default:
		return config.ErrInvalidValue{
			Key:          cfgReportSink,
			InvalidValue: c.Sink.String(),
			Values:       []string{SinkLog.String(), SinkRedis.String()},
		}
	}
}

func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String(cfgReportSink, SinkLog.String(),
		"where the result of every call is written. "+
			"Options are "+SinkLog.String()+", "+SinkRedis.String()+".")
	cmd.PersistentFlags().String(cfgReportRedisAddr, "127.0.0.1:6379", "redis instance address")
	cmd.PersistentFlags().String(cfgReportRedisKey, "loadgen", "prefix of the redis lists holding results")
	return nil
}

// NewSink creates the sink selected by the configuration
func NewSink(c *Config, logger log.Logger) Sink {
	if c.Sink == SinkRedis {
		return NewRedisSink(RedisSinkProps{Addr: c.RedisAddr, Key: c.RedisKey})
	}
	return NewLogSink(logger)
}

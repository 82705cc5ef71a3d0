package metrics

import (
	"time"

	"github.com/pontem-network/flashloan-loadgen/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	cfgMetricsMode              = "metrics.mode"
	cfgMetricsNamespace         = "metrics.namespace"
	cfgMetricsPullAddr          = "metrics.pull.addr"
	cfgMetricsPullPort          = "metrics.pull.port"
	cfgMetricsPushAddr          = "metrics.push.addr"
	cfgMetricsPushJobName       = "metrics.push.job_name"
	cfgMetricsPushInstanceLabel = "metrics.push.instance_label"
	cfgMetricsPushInterval      = "metrics.push.interval"

	metricsModeNone = "none"
	metricsModePull = "pull"
	metricsModePush = "push"

	defaultPushInterval = 10 // in seconds
)

type Config struct {
	Mode              string
	Namespace         string
	PullAddr          string
	PullPort          string
	PushAddr          string
	PushJobName       string
	PushInstanceLabel string
	PushInterval      time.Duration
}

func (c *Config) Log(fields log.Fields) {
	fields.Add(cfgMetricsMode, c.Mode)
	fields.Add(cfgMetricsNamespace, c.Namespace)
	fields.Add(cfgMetricsPullAddr, c.PullAddr)
	fields.Add(cfgMetricsPullPort, c.PullPort)
	fields.Add(cfgMetricsPushAddr, c.PushAddr)
	fields.Add(cfgMetricsPushJobName, c.PushJobName)
	fields.Add(cfgMetricsPushInstanceLabel, c.PushInstanceLabel)
	fields.Add(cfgMetricsPushInterval, c.PushInterval)
}

func (c *Config) Configure(v *viper.Viper) error {
	c.Mode = v.GetString(cfgMetricsMode)
	c.Namespace = v.GetString(cfgMetricsNamespace)
	c.PullAddr = v.GetString(cfgMetricsPullAddr)
	c.PullPort = v.GetString(cfgMetricsPullPort)
	c.PushAddr = v.GetString(cfgMetricsPushAddr)
	c.PushJobName = v.GetString(cfgMetricsPushJobName)
	c.PushInstanceLabel = v.GetString(cfgMetricsPushInstanceLabel)
	c.PushInterval = v.GetDuration(cfgMetricsPushInterval)

	return nil
}

func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String(cfgMetricsMode, metricsModeNone, "Prometheus metrics mode. Must be one of none, push, pull.")
	cmd.PersistentFlags().String(cfgMetricsNamespace, "loadgen", "Prefix for the names of all the exported metrics.")
	cmd.PersistentFlags().String(cfgMetricsPullAddr, "localhost", "Prometheus metrics address, on which the metrics service will live.")
	cmd.PersistentFlags().String(cfgMetricsPullPort, "7000", "Prometheus metrics port, by which metrics will be made available.")
	cmd.PersistentFlags().String(cfgMetricsPushAddr, "", "Prometheus push gateway address")
	cmd.PersistentFlags().String(cfgMetricsPushJobName, "", "Prometheus push job name")
	cmd.PersistentFlags().String(cfgMetricsPushInstanceLabel, "", "Prometheus push instance label")
	cmd.PersistentFlags().Duration(cfgMetricsPushInterval, defaultPushInterval*time.Second, "Prometheus push interval")

	return nil
}

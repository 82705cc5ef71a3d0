package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/pontem-network/flashloan-loadgen/log"
)

type nodeConfig struct {
	URL     string
	Retries int
}

func (c *nodeConfig) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String("node.url", "http://127.0.0.1:8080/v1", "node url")
	cmd.PersistentFlags().Int("node.retries", 3, "retries")
	return nil
}

func (c *nodeConfig) Configure(v *viper.Viper) error {
	c.URL = v.GetString("node.url")
	if len(c.URL) == 0 {
		return ErrKeyNotSet{Key: "node.url"}
	}
	c.Retries = v.GetInt("node.retries")
	return nil
}

func (c *nodeConfig) Log(fields log.Fields) {
	fields.Add("node.url", c.URL)
	fields.Add("node.retries", c.Retries)
}

type testConfig struct {
	node nodeConfig
}

func (c *testConfig) EnvPrefix() string {
	return "LOADGEN_TEST"
}

func (c *testConfig) Binders() []Binder {
	return Sections{&c.node}.Binders()
}

type recordedFields map[string]interface{}

func (f recordedFields) Add(key string, value interface{}) {
	f[key] = value
}

func TestParseDefaults(t *testing.T) {
	cfg := &testConfig{}
	parser, err := Generate(&cobra.Command{Use: "test"}, cfg)
	assert.Nil(t, err)

	err = parser.Parse()
	assert.Nil(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/v1", cfg.node.URL)
	assert.Equal(t, 3, cfg.node.Retries)
}

func TestParseTwiceFails(t *testing.T) {
	parser, err := Generate(&cobra.Command{Use: "test"}, &testConfig{})
	assert.Nil(t, err)

	assert.Nil(t, parser.Parse())
	assert.Equal(t, ErrAlreadyParsed, parser.Parse())
}

func TestParseFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cfg := &testConfig{}
	parser, err := Generate(cmd, cfg)
	assert.Nil(t, err)

	err = cmd.PersistentFlags().Parse([]string{"--node.url", "http://node:8080/v1"})
	assert.Nil(t, err)

	assert.Nil(t, parser.Parse())
	assert.Equal(t, "http://node:8080/v1", cfg.node.URL)
}

func TestParseEnvironment(t *testing.T) {
	os.Setenv("LOADGEN_TEST_NODE_RETRIES", "9")
	defer os.Unsetenv("LOADGEN_TEST_NODE_RETRIES")

	cfg := &testConfig{}
	parser, err := Generate(&cobra.Command{Use: "test"}, cfg)
	assert.Nil(t, err)

	assert.Nil(t, parser.Parse())
	assert.Equal(t, 9, cfg.node.Retries)
}

func TestParseConfigFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "loadgen.yaml")
	err = ioutil.WriteFile(path, []byte("node:\n  retries: 5\n"), 0600)
	assert.Nil(t, err)

	cmd := &cobra.Command{Use: "test"}
	cfg := &testConfig{}
	parser, err := Generate(cmd, cfg)
	assert.Nil(t, err)
	assert.Nil(t, cmd.PersistentFlags().Parse([]string{"--config.path", path}))

	assert.Nil(t, parser.Parse())
	assert.Equal(t, 5, cfg.node.Retries)
}

func TestParseConfigFileBadExtension(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	parser, err := Generate(cmd, &testConfig{})
	assert.Nil(t, err)
	assert.Nil(t, cmd.PersistentFlags().Parse([]string{"--config.path", "loadgen.json"}))

	err = parser.Parse()
	_, ok := err.(ErrInvalidValue)
	assert.True(t, ok)
}

func TestSectionsLogConfiguredValues(t *testing.T) {
	cfg := &testConfig{}
	parser, err := Generate(&cobra.Command{Use: "test"}, cfg)
	assert.Nil(t, err)
	assert.Nil(t, parser.Parse())

	fields := recordedFields{}
	Sections{&cfg.node}.Log(fields)

	assert.Equal(t, recordedFields{
		"node.url":     "http://127.0.0.1:8080/v1",
		"node.retries": 3,
	}, fields)
}

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/revolut2camt/internal/config"
)

const (
	testIBAN    = "LT353250012345678901"
	fixturePath = "../../testdata/revolut_business.csv"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	cfg := config.Default("Nethemba s.r.o.", testIBAN,
		[2]string{"Grosslingova 2503/62", "Bratislava - St. Mesto 81109 SK"})
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, config.Save(path, cfg))
	return path
}

func absFixture(t *testing.T) string {
	t.Helper()
	p, err := filepath.Abs(fixturePath)
	require.NoError(t, err)
	return p
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev (commit: none, built: unknown)")
}

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "init", dir,
		"--name", "Nethemba s.r.o.",
		"--iban", "LT35 3250 0123 4567 8901",
		"--address-line", "Grosslingova 2503/62",
		"--address-line", "Bratislava - St. Mesto 81109 SK")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized revolut2camt config at")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, testIBAN, cfg.Account.IBAN)
	assert.Equal(t, "EUR", cfg.Account.Currency)
	assert.Equal(t, "Nethemba s.r.o.", cfg.Account.Owner.Name)
	assert.Equal(t, []string{"Grosslingova 2503/62", "Bratislava - St. Mesto 81109 SK"}, cfg.Account.Owner.Address)
	assert.Equal(t, "REVOLT21", cfg.Servicer.BIC)
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runCLI(t, "init", t.TempDir(), "--iban", testIBAN)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name"`)
}

func TestInit_RequiresTwoAddressLines(t *testing.T) {
	_, err := runCLI(t, "init", t.TempDir(), "--name", "X", "--iban", testIBAN, "--address-line", "only one")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly two --address-line values")
}

func TestInit_InvalidIBAN(t *testing.T) {
	_, err := runCLI(t, "init", t.TempDir(), "--name", "X", "--iban", "LT000000000000000000",
		"--address-line", "a", "--address-line", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account.iban")
}

func TestInit_ExistingConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir)
	args := []string{"init", dir, "--name", "Other", "--iban", testIBAN, "--address-line", "a", "--address-line", "b"}

	_, err := runCLI(t, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCLI(t, append(args, "--force")...)
	require.NoError(t, err)
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "Other", cfg.Account.Owner.Name)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	output := filepath.Join(dir, "statement.xml")

	out, err := runCLI(t, "convert", "--input", fixturePath, "--config", cfgPath, "--output", output, "--workers", "3")
	require.NoError(t, err)
	assert.Equal(t, "Converted 5 transactions (1 CRDT, 4 DBIT) -> "+output+"\n", out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	xml := string(data)
	assert.True(t, strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, xml, "<MsgId>REVOLT21-8901-")
	assert.Contains(t, xml, "<Id>LT353250012345678901-260105-260131</Id>")
	assert.Equal(t, 5, strings.Count(xml, "<Ntry>"))
	assert.Equal(t, 1, strings.Count(xml, "<AmtDtls>"))
}

func TestConvert_DefaultOutputName(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	input := absFixture(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := runCLI(t, "convert", "--input", input, "--config", cfgPath)
	require.NoError(t, err)

	name := "LT353250012345678901_20260105_20260131.xml"
	assert.Contains(t, out, "-> "+name)
	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)
}

func TestConvert_IBANOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)
	output := filepath.Join(dir, "out.xml")

	_, err := runCLI(t, "convert", "--input", fixturePath, "--config", cfgPath,
		"--iban", "LT121000011101001000", "--output", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<IBAN>LT121000011101001000</IBAN>")
}

func TestConvert_UnknownCategory(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	data, err := os.ReadFile(fixturePath)
	require.NoError(t, err)
	input := filepath.Join(dir, "ledger.csv")
	require.NoError(t, os.WriteFile(input, []byte(strings.Replace(string(data), ",FEE,", ",CASHBACK,", 1)), 0o644))
	output := filepath.Join(dir, "out.xml")

	_, err = runCLI(t, "convert", "--input", input, "--config", cfgPath, "--output", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "6790a1f0-0005-a000-9000-000000000005")
	assert.Contains(t, err.Error(), `unknown transaction category "CASHBACK"`)
	assert.Contains(t, err.Error(), "CARD_PAYMENT, FEE, TOPUP, TRANSFER")
	_, statErr := os.Stat(output)
	assert.ErrorIs(t, statErr, os.ErrNotExist, "no partial output")

	out, err := runCLI(t, "convert", "--input", input, "--config", cfgPath, "--output", output, "--allow-unknown-types")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 5 transactions")
	xml, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(xml), "<Cd>99999999999</Cd>")
}

func TestConvert_MissingConfig(t *testing.T) {
	_, err := runCLI(t, "convert", "--input", fixturePath, "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "revolut2camt init")
}

func TestConvert_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "convert", "--input", filepath.Join(dir, "none.csv"), "--config", writeConfig(t, dir))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvert_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "convert", "--input", fixturePath, "--config", writeConfig(t, dir), "--format", "chase")
	require.Error(t, err)
	assert.Equal(t, `unsupported format "chase" (available: revolut)`, err.Error())
}

func TestConvert_BadLogLevel(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "--log-level", "loud", "convert", "--input", fixturePath, "--config", writeConfig(t, dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log level "loud"`)
}

func TestServe_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default("", testIBAN, [2]string{"a", "b"})
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, config.Save(path, cfg))

	_, err := runCLI(t, "serve", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account.owner.name")
}

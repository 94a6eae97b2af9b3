// Package config owns process-wide configuration: defaults, the optional
// JSON config file, .env autoloading, and the environment overrides for
// workbook locations.
package config

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

type Config struct {
	PurchaseWorkbook          string   `json:"purchase_workbook,omitempty"`
	PurchaseTab               string   `json:"purchase_tab,omitempty"`
	DashboardWorkbook         string   `json:"dashboard_workbook,omitempty"`
	DocPriceWorkbook          string   `json:"doc_price_workbook,omitempty"`
	DocPriceTab               string   `json:"doc_price_tab,omitempty"`
	CompetitorSellingWorkbook string   `json:"competitor_selling_workbook,omitempty"`
	CompetitorSellingTabs     []string `json:"competitor_selling_tabs,omitempty"`
	CompetitorBuyingWorkbook  string   `json:"competitor_buying_workbook,omitempty"`
	CompetitorBuyingTab       string   `json:"competitor_buying_tab,omitempty"`
	HashFile                  string   `json:"hash_file,omitempty"`
	StrictSchema              bool     `json:"strict_schema,omitempty"`
	Timezone                  string   `json:"timezone,omitempty"`
	ArchiveBucket             string   `json:"archive_bucket,omitempty"`
}

func DefaultValueConfig() Config {
	return Config{
		PurchaseTab:           "Purchases",
		DocPriceTab:           "DOC Prices",
		CompetitorSellingTabs: []string{"Abuja_Entry", "Kaduna_Entry", "Kano_Entry"},
		CompetitorBuyingTab:   "Form responses 1",
		DashboardWorkbook:     "./out/dashboard.xlsx",
		HashFile:              "./data_hashes.json",
		Timezone:              "Africa/Lagos",
	}
}

// create config with default values before config gets initialized
var Cfg Config = DefaultValueConfig() // this one we use to access config values from anywhere

// raw top-level JSON, kept so sub-packages can pull their own sections
var configSections map[string]json.RawMessage

var dotEnvOnce sync.Once

func loadDotEnv() {
	dotEnvOnce.Do(func() {
		loadErr := godotenv.Load()
		if loadErr != nil {
			tl.Log(tl.Verbose, palette.CyanDim, "no %s file found, using %s only", ".env", "process environment")
		}
	})
}

/*
InitializeConfig loads the JSON config file into Cfg, fills missing fields
from defaults, then applies environment overrides for workbook locations.
A missing config file is not an error; defaults plus environment carry the
whole configuration in that case.
*/
func InitializeConfig(configPath string) {
	loadDotEnv()

	defaultConfig := DefaultValueConfig() // Default values to replace some values with during config initialization

	configBytes, readErr := os.ReadFile(configPath)
	if readErr != nil {
		tl.Log(tl.Info, palette.Purple, "config file '%s' %s, keeping %s", configPath, "not readable", "default config")
	} else {
		unmarshalErr := json.Unmarshal(configBytes, &Cfg)
		if unmarshalErr != nil {
			tl.Log(tl.Warning, palette.YellowBold, "config file '%s' is %s: %v", configPath, "not valid JSON", unmarshalErr)
		} else {
			_ = json.Unmarshal(configBytes, &configSections)
			tl.Log(tl.Info, palette.Green, "config file '%s' was %s", configPath, "loaded")
		}
	}

	tl.ApplyDefaults(&Cfg, defaultConfig, func(field string, defVal any) {
		tl.Log(
			tl.Info, palette.Purple,
			"%s field is %s in %s configuration. Using default value: %v",
			field, "missing", GetPackageName(), tl.PrettyForStderr(defVal),
		)
	})

	applyEnvOverrides()

	tl.LogJSON(tl.Verbose, palette.CyanDim, "configuration", Cfg)
}

/*
applyEnvOverrides lets the environment win over file values for workbook
locations and tabs. Locations may be local paths or http(s) URLs.
*/
func applyEnvOverrides() {
	overrides := map[string]*string{
		"PURCHASE_WORKBOOK":           &Cfg.PurchaseWorkbook,
		"PURCHASE_TAB":                &Cfg.PurchaseTab,
		"DASHBOARD_WORKBOOK":          &Cfg.DashboardWorkbook,
		"DOC_PRICE_WORKBOOK":          &Cfg.DocPriceWorkbook,
		"DOC_PRICE_TAB":               &Cfg.DocPriceTab,
		"COMPETITOR_SELLING_WORKBOOK": &Cfg.CompetitorSellingWorkbook,
		"COMPETITOR_BUYING_WORKBOOK":  &Cfg.CompetitorBuyingWorkbook,
		"COMPETITOR_BUYING_TAB":       &Cfg.CompetitorBuyingTab,
		"ARCHIVE_BUCKET":              &Cfg.ArchiveBucket,
	}
	for envName, target := range overrides {
		value := os.Getenv(envName)
		if value != "" {
			*target = value
			tl.Log(tl.Verbose, palette.CyanDim, "%s set from %s", envName, "environment")
		}
	}

	tabs := os.Getenv("COMPETITOR_SELLING_TABS")
	if tabs != "" {
		Cfg.CompetitorSellingTabs = strings.Split(tabs, ",")
	}
}

/*
LoadSection unmarshals a named top-level object of the config file into
target. Returns false when the section is absent or the file was never
loaded, so callers can fall back to their package defaults.
*/
func LoadSection(name string, target any) bool {
	section, present := configSections[name]
	if !present {
		return false
	}

	unmarshalErr := json.Unmarshal(section, target)
	if unmarshalErr != nil {
		tl.Log(tl.Warning, palette.YellowBold, "config section '%s' is %s: %v", name, "not valid", unmarshalErr)
		return false
	}
	return true
}

/*
CheckIfEnvVarsPresent exits the process when any of the named environment
variables is unset. Loads .env first so variables declared there count.
*/
func CheckIfEnvVarsPresent(envVarNames ...string) {
	loadDotEnv()

	missing := false
	for _, envVarName := range envVarNames {
		if os.Getenv(envVarName) == "" {
			tl.Log(tl.Warning, palette.YellowBold, "environment variable %s is %s", envVarName, "required")
			missing = true
		}
	}
	if missing {
		os.Exit(1)
	}
}

/*
GetPackageName reports the import-path leaf of the caller's package, for
log labels.
*/
func GetPackageName() string {
	callerPC, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}

	fullName := runtime.FuncForPC(callerPC).Name()
	if lastSlash := strings.LastIndex(fullName, "/"); lastSlash >= 0 {
		fullName = fullName[lastSlash+1:]
	}
	if firstDot := strings.Index(fullName, "."); firstDot >= 0 {
		return fullName[:firstDot]
	}
	return fullName
}

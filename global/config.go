package global

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/jinzhu/gorm"
	"github.com/sosodev/duration"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"tvtv2xmltv/model"
)

const UserAgent = "tvtv2xmltv/2.0"

// MaxGuideDays caps the grid window regardless of configuration,
// the listing service serves nothing beyond it.
const MaxGuideDays = 8

var ErrConfigNotFound = errors.New("config not found")

// GetConfig resolves a config key, environment first, then the cache
// backed by the config table. "base_url" reads TVTV_BASE_URL and so on.
func GetConfig(key string) (string, error) {
	if env := os.Getenv("TVTV_" + strings.ToUpper(key)); env != "" {
		return env, nil
	}
	if confValue, ok := ConfigCache.Load(key); ok {
		return confValue, nil
	}
	var value model.Config
	err := DB.Where("name = ?", key).First(&value).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return "", ErrConfigNotFound
		} else {
			return "", err
		}
	} else {
		ConfigCache.Store(key, value.Data)
		return value.Data, nil
	}
}

func SetConfig(key, value string) error {
	data := model.Config{Name: key, Data: value}
	err := DB.Save(&data).Error
	if err == nil {
		ConfigCache.Store(key, value)
	}
	return err
}

// ParseInterval accepts Go duration strings as well as ISO-8601
// durations such as PT6H.
func ParseInterval(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	iso, err := duration.Parse(s)
	if err != nil {
		return 0, err
	}
	return iso.ToTimeDuration(), nil
}

// LoadGuideConfig assembles the pipeline configuration. A missing
// lineup, a bad timezone or a bad exclusion rule are fatal, everything
// else falls back with a warning.
func LoadGuideConfig() (*model.GuideConfig, error) {
	cfg := &model.GuideConfig{
		UserAgent: UserAgent,
		Days:      MaxGuideDays,
		Language:  "en",
		Location:  time.UTC,
	}
	if v, err := GetConfig("base_url"); err == nil && v != "" {
		cfg.BaseURL = strings.TrimSuffix(v, "/")
	}
	if !IsValidURL(cfg.BaseURL) {
		return nil, fmt.Errorf("invalid base_url %q", cfg.BaseURL)
	}
	if v, err := GetConfig("lineup"); err == nil {
		cfg.LineupID = v
	}
	if cfg.LineupID == "" {
		return nil, errors.New("no lineup configured")
	}
	if v, err := GetConfig("days"); err == nil && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Days = n
		} else {
			zap.S().Warnf("ignoring bad days value %q", v)
		}
	}
	if cfg.Days > MaxGuideDays {
		cfg.Days = MaxGuideDays
	}
	if cfg.Days < 0 {
		cfg.Days = 0
	}
	if v, err := GetConfig("timezone"); err == nil && v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("timezone %q not found", v)
		}
		cfg.Location = loc
	}
	if v, err := GetConfig("language"); err == nil && v != "" {
		if tag, err := language.Parse(v); err == nil {
			base, _ := tag.Base()
			cfg.Language = base.String()
		} else {
			zap.S().Warnf("ignoring bad language tag %q", v)
		}
	}
	if v, err := GetConfig("output"); err == nil && v != "" {
		cfg.Output = v
	} else {
		cfg.Output = filepath.Join(os.Getenv("TVTV_DATADIR"), "guide.xml")
	}
	if v, err := GetConfig("stream_url"); err == nil {
		cfg.StreamURL = v
	}
	if v, err := GetConfig("exclude"); err == nil && v != "" {
		re, err := regexp2.Compile(v, regexp2.IgnoreCase)
		if err != nil {
			return nil, fmt.Errorf("bad exclude rule %q: %w", v, err)
		}
		cfg.Exclude = re
	}
	if v, err := GetConfig("proxy_url"); err == nil {
		cfg.ProxyURL = v
	}
	return cfg, nil
}

package translator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultYoudaoURL is the Youdao text translation endpoint
const DefaultYoudaoURL = "https://openapi.youdao.com/api"

// YoudaoConfig holds Youdao credentials and languages
type YoudaoConfig struct {
	AppKey    string
	AppSecret string
	URL       string
	From      string
	To        string
}

// Youdao translates through the Youdao open API
type Youdao struct {
	cfg    YoudaoConfig
	client *http.Client
	logger *zap.Logger
	now    func() time.Time
}

type youdaoResponse struct {
	ErrorCode   string   `json:"errorCode"`
	Query       string   `json:"query"`
	Translation []string `json:"translation"`
	Basic       struct {
		Explains []string `json:"explains"`
	} `json:"basic"`
	Web []struct {
		Key   string   `json:"key"`
		Value []string `json:"value"`
	} `json:"web"`
}

// NewYoudao creates a Youdao translator
func NewYoudao(cfg YoudaoConfig, timeout time.Duration, logger *zap.Logger) *Youdao {
	if cfg.URL == "" {
		cfg.URL = DefaultYoudaoURL
	}
	if cfg.From == "" {
		cfg.From = "en"
	}
	if cfg.To == "" {
		cfg.To = "zh-CHS"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Youdao{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
		now:    time.Now,
	}
}

// Name returns the provider name
func (y *Youdao) Name() string {
	return ProviderYoudao
}

// Translate looks up word and formats the translations, dictionary
// explanations and web phrases into one text
func (y *Youdao) Translate(ctx context.Context, word string) (string, error) {
	if unconfigured(y.cfg.AppKey, y.cfg.AppSecret) {
		return "", ErrNotConfigured
	}

	salt := uuid.NewString()
	curtime := strconv.FormatInt(y.now().Unix(), 10)

	form := url.Values{}
	form.Set("q", word)
	form.Set("from", y.cfg.From)
	form.Set("to", y.cfg.To)
	form.Set("appKey", y.cfg.AppKey)
	form.Set("salt", salt)
	form.Set("sign", youdaoSign(y.cfg.AppKey, word, salt, curtime, y.cfg.AppSecret))
	form.Set("signType", "v3")
	form.Set("curtime", curtime)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, y.cfg.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build youdao request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := y.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("youdao request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("youdao returned status %d", resp.StatusCode)
	}

	var result youdaoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode youdao response: %w", err)
	}

	if result.ErrorCode != "0" {
		y.logger.Warn("Youdao rejected request",
			zap.String("word", word),
			zap.String("error_code", result.ErrorCode),
		)
		return "", fmt.Errorf("youdao error code %s", result.ErrorCode)
	}

	return formatYoudao(result), nil
}

func formatYoudao(r youdaoResponse) string {
	var b strings.Builder

	b.WriteString(strings.Join(r.Translation, ", "))

	if len(r.Basic.Explains) > 0 {
		b.WriteString("\n解释: ")
		b.WriteString(strings.Join(r.Basic.Explains, ", "))
	}

	if len(r.Web) > 0 {
		b.WriteString("\n网络释义:\n")
		for _, item := range r.Web {
			fmt.Fprintf(&b, "- %s: %s\n", item.Key, strings.Join(item.Value, ", "))
		}
	}

	return b.String()
}

// youdaoSign computes the v3 signature sha256(appKey+input+salt+curtime+secret)
func youdaoSign(appKey, q, salt, curtime, secret string) string {
	sum := sha256.Sum256([]byte(appKey + youdaoInput(q) + salt + curtime + secret))
	return hex.EncodeToString(sum[:])
}

// youdaoInput shortens queries longer than 20 characters to
// first 10 + length + last 10
func youdaoInput(q string) string {
	runes := []rune(q)
	if len(runes) <= 20 {
		return q
	}
	return string(runes[:10]) + strconv.Itoa(len(runes)) + string(runes[len(runes)-10:])
}

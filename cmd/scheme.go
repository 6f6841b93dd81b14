package cmd

import (
	"net/url"

	"github.com/rotisserie/eris"
)

// ensureScheme は、URLのスキームが存在しない場合に https:// を補完します。
// 既にスキームがある場合は、それが http または https であるかをチェックします。
// run コマンドの入力には適用しません (出力URLは入力行そのままとするため)。
func ensureScheme(rawURL string) (string, error) {
	if rawURL == "" {
		return "", eris.New("URLが空です")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", eris.Wrap(err, "URLのパースエラー")
	}

	if parsedURL.Scheme != "" {
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return "", eris.Errorf("無効なURLスキームです。httpまたはhttpsを指定してください: %s", rawURL)
		}
		return rawURL, nil
	}

	return "https://" + rawURL, nil
}

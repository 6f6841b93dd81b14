// Package source は、処理対象のURLリストを読み込みます。
package source

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// ReadFile は path からURLリストを読み込みます。
// ファイルが存在しない・読めない場合は起動時の致命的エラーです。
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "URLリストを開けません: %s", path)
	}
	defer f.Close()

	urls, err := ReadLines(f)
	if err != nil {
		return nil, eris.Wrapf(err, "URLリストの読み取りエラー: %s", path)
	}
	return urls, nil
}

// ReadLines は1行1URLで読み込み、前後の空白を除去します。
// 空行は読み飛ばし、順序と重複はそのまま保持します。
func ReadLines(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		url := strings.TrimSpace(scanner.Text())
		if url != "" {
			urls = append(urls, url)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "scan")
	}
	return urls, nil
}

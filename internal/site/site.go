// Package site 以 html/template 產生頁面; 靜態頁的內容是 markdown.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"
	"time"

	"otodoke_life/internal/letter/app"
	"otodoke_life/internal/letter/domain"
	"otodoke_life/internal/qr"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html content/*.md
var assets embed.FS

// RevealDelay 信件頁逐字顯示的間隔
const RevealDelay = 80 * time.Millisecond

// Options 頁面共用設定
type Options struct {
	BaseURL         string
	GAMeasurementID string
	ContactEmail    string
}

// ContentPage markdown 靜態頁
type ContentPage struct {
	Path        string
	Name        string
	Title       string
	Description string
}

// ContentPages 依 sitemap 順序
var ContentPages = []ContentPage{
	{Path: "/about", Name: "about", Title: "私たちについて", Description: "OTODOKE LIFEの想いと仕組み"},
	{Path: "/donate", Name: "donate", Title: "寄付", Description: "OTODOKE LIFEへのご支援について"},
	{Path: "/faq", Name: "faq", Title: "よくある質問", Description: "OTODOKE LIFEのよくある質問"},
	{Path: "/privacy", Name: "privacy", Title: "プライバシーポリシー", Description: "OTODOKE LIFEのプライバシーポリシー"},
	{Path: "/terms", Name: "terms", Title: "利用規約", Description: "OTODOKE LIFEの利用規約"},
}

// Renderer 已解析的樣板與轉好的 markdown
type Renderer struct {
	opts      Options
	templates map[string]*template.Template
	content   map[string]template.HTML
}

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.DefinitionList,
	),
)

// NewRenderer 解析所有樣板並轉換 markdown, 任一失敗都回傳錯誤
func NewRenderer(opts Options) (*Renderer, error) {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	r := &Renderer{
		opts:      opts,
		templates: make(map[string]*template.Template),
		content:   make(map[string]template.HTML),
	}

	for _, name := range []string{"home", "letter", "page", "notfound"} {
		t, err := template.ParseFS(assets, "templates/layout.html", path.Join("templates", name+".html"))
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}

	for _, p := range ContentPages {
		src, err := assets.ReadFile(path.Join("content", p.Name+".md"))
		if err != nil {
			return nil, fmt.Errorf("read content %s: %w", p.Name, err)
		}
		var buf bytes.Buffer
		if err := markdown.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("convert content %s: %w", p.Name, err)
		}
		r.content[p.Name] = template.HTML(buf.String())
	}

	return r, nil
}

// Options 頁面設定
func (r *Renderer) Options() Options {
	return r.opts
}

// pageData 所有樣板共用的資料, 各頁只用到其中一部分
type pageData struct {
	Site        Options
	Path        string
	Title       string
	Description string
	Year        int

	// content page
	Body template.HTML

	// home
	Form       app.ComposeRequest
	Length     domain.LengthClass
	Result     *app.ComposeResult
	QRDataURI  template.URL
	QRError    string
	Error      string
	MaxMessage int
	MaxName    int

	// letter
	RevealDelayMillis int64
}

func (r *Renderer) newPageData(path, title, description string) pageData {
	return pageData{
		Site:        r.opts,
		Path:        path,
		Title:       title,
		Description: description,
		Year:        time.Now().Year(),
	}
}

func (r *Renderer) execute(w io.Writer, name string, data pageData) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Content 靜態頁
func (r *Renderer) Content(w io.Writer, p ContentPage) error {
	data := r.newPageData(p.Path, p.Title, p.Description)
	data.Body = r.content[p.Name]
	return r.execute(w, "page", data)
}

// Letter 信件頁, 內容由瀏覽器讀取 fragment 後呼叫 decode API
func (r *Renderer) Letter(w io.Writer) error {
	data := r.newPageData("/letter", "大切な人からのメッセージ", "あなたに届いたメッセージ")
	data.RevealDelayMillis = RevealDelay.Milliseconds()
	return r.execute(w, "letter", data)
}

// HomeView 首頁表單與編碼結果
type HomeView struct {
	Form    app.ComposeRequest
	Result  *app.ComposeResult
	QR      *qr.Image
	QRError string
	Error   string
}

// Home 首頁; 有 Result 時顯示 QR 或複製 URL 的備援
func (r *Renderer) Home(w io.Writer, v HomeView) error {
	data := r.newPageData("/", "", "大切な人への想いを、QRコードで永遠に残すメッセージサービス")
	data.Form = v.Form
	data.Length = domain.ClassifyLength(strings.TrimSpace(v.Form.Message))
	data.Result = v.Result
	data.QRError = v.QRError
	data.Error = v.Error
	data.MaxMessage = domain.MaxMessageLength
	data.MaxName = domain.MaxNameLength
	if v.QR != nil {
		data.QRDataURI = template.URL(v.QR.DataURI())
	}
	return r.execute(w, "home", data)
}

// NotFound 404 頁
func (r *Renderer) NotFound(w io.Writer, path string) error {
	return r.execute(w, "notfound", r.newPageData(path, "ページが見つかりません", ""))
}

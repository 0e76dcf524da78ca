package render

import (
	"html/template"
	"io"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/model"
)

var listingTpl = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1, user-scalable=no">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<h2>Folder {{.Path}}</h2>
{{if .UploadEnabled}}<form method="POST" action="{{.UploadAction}}" enctype="multipart/form-data"><input type="file" name="file" multiple><input type="submit" value="upload"></form>
{{end}}<a href="{{.HomeHref}}">Home</a>{{if .ParentHref}} <a href="{{.ParentHref}}">Up</a>{{end}}<br><br>
<table id="files">
<thead><tr><th>Name</th><th>Type</th><th>Size</th><th>Modified</th><th>Actions</th></tr></thead>
<tbody>
{{range .Items}}<tr><td>{{if .IsDir}}<button onclick="navigate_to({{.Href}})">{{.Name}}</button>{{else}}{{.Name}}{{end}}</td><td>{{.Type}}</td><td>{{.Size}}</td><td>{{.ModTime}}</td><td>{{if not .IsDir}}{{if $.DownloadEnabled}}<button onclick="download_file({{.Href}}, {{.Name}})">Download</button>{{end}}{{if $.DeletionEnabled}}<button onclick="delete_file({{.Href}})">Delete</button>{{end}}{{end}}</td></tr>
{{end}}</tbody>
</table>
<script>
function navigate_to(path) { window.location.href = path; }
function delete_file(path) { fetch(path, {method: "DELETE"}).then(function () { window.location.reload(); }); }
function download_file(path, filename) {
  fetch(path).then(function (response) { return response.blob(); }).then(function (blob) {
    const link = document.createElement('a');
    link.href = URL.createObjectURL(blob);
    link.download = filename;
    link.click();
  }).catch(console.error);
}
</script>
</body>
</html>
`))

const (
	ListingTitle = "SD Card Content"
)

// FileType 按扩展名粗略分类, 仅用于页面展示
func FileType(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if len(ext) == 0 {
		return "Unknown"
	}
	switch ext {
	case "flac", "mp3", "wav":
		return "Audio"
	case "jpg", "jpeg", "png", "gif":
		return "Image"
	case "pdf", "docx", "txt":
		return "Document"
	case "yaml", "json":
		return "Configuration"
	default:
		return "Other"
	}
}

type ListingOption struct {
	Prefix          string // 条目链接使用的url前缀
	Root            string
	DownloadEnabled bool
	DeletionEnabled bool
	UploadEnabled   bool
}

// BuildListingPage 将目录内容转换为页面数据, items需为dir的直接子级
func BuildListingPage(opt *ListingOption, dir *pathutil.ResolvedPath, items []*filestore.FileInfo) *model.ListingPage {
	page := &model.ListingPage{
		Title:           ListingTitle,
		Path:            dir.Abs,
		HomeHref:        pathutil.Href(opt.Prefix, "/", true),
		UploadAction:    pathutil.Href(opt.Prefix, dir.Rel, true),
		Items:           make([]*model.ListingItem, 0, len(items)),
		DownloadEnabled: opt.DownloadEnabled,
		DeletionEnabled: opt.DeletionEnabled,
		UploadEnabled:   opt.UploadEnabled,
	}
	if !dir.IsRoot() {
		page.ParentHref = pathutil.Href(opt.Prefix, path.Dir(dir.Rel), true)
	}
	for _, item := range items {
		rel := path.Join(dir.Rel, item.Name())
		li := &model.ListingItem{
			Name:    item.Name(),
			Href:    pathutil.Href(opt.Prefix, rel, item.IsDir),
			IsDir:   item.IsDir,
			Type:    FileType(item.Name()),
			Size:    humanize.IBytes(uint64(item.Size)),
			ModTime: item.ModTime.UTC().Format("2006-01-02 15:04:05"),
		}
		if item.IsDir {
			li.Type = "Folder"
			li.Size = "-"
		}
		page.Items = append(page.Items, li)
	}
	return page
}

func WriteListing(w io.Writer, page *model.ListingPage) error {
	return listingTpl.Execute(w, page)
}

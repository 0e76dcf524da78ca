package render

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/model"
)

var testTime = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func testItems() []*filestore.FileInfo {
	return []*filestore.FileInfo{
		{Path: "/sdcard/b.txt", Size: 2048, ModTime: testTime},
		{Path: "/sdcard/my music", IsDir: true, ModTime: testTime},
		{Path: "/sdcard/a.mp3", Size: 10, ModTime: testTime},
	}
}

func TestFileType(t *testing.T) {
	assert.Equal(t, "Audio", FileType("a.MP3"))
	assert.Equal(t, "Image", FileType("a.jpeg"))
	assert.Equal(t, "Document", FileType("a.txt"))
	assert.Equal(t, "Configuration", FileType("a.yaml"))
	assert.Equal(t, "Other", FileType("a.bin"))
	assert.Equal(t, "Unknown", FileType("README"))
}

func TestSortEntries(t *testing.T) {
	items := testItems()
	SortEntries(items)
	assert.Equal(t, "my music", items[0].Name())
	assert.Equal(t, "a.mp3", items[1].Name())
	assert.Equal(t, "b.txt", items[2].Name())
}

func TestListing(t *testing.T) {
	opt := &ListingOption{Prefix: "/files", Root: "/sdcard", DownloadEnabled: true}
	dir := &pathutil.ResolvedPath{Abs: "/sdcard", Rel: "/"}
	items := testItems()
	SortEntries(items)
	page := BuildListingPage(opt, dir, items)
	require.Equal(t, 3, len(page.Items))
	assert.Equal(t, "/files/my%20music/", page.Items[0].Href)
	assert.Equal(t, "Folder", page.Items[0].Type)
	assert.Equal(t, "2.0 KiB", page.Items[2].Size)
	assert.Equal(t, "", page.ParentHref)
	assert.Equal(t, "/files/", page.HomeHref)

	buf := &bytes.Buffer{}
	require.NoError(t, WriteListing(buf, page))
	html := buf.String()
	assert.True(t, strings.Contains(html, "SD Card Content"))
	assert.True(t, strings.Contains(html, "a.mp3"))
	assert.True(t, strings.Contains(html, "Download"))
	assert.False(t, strings.Contains(html, ">Delete<"))
	assert.False(t, strings.Contains(html, "multipart/form-data"))

	opt = &ListingOption{Prefix: "/files", Root: "/sdcard", DeletionEnabled: true, UploadEnabled: true}
	page = BuildListingPage(opt, &pathutil.ResolvedPath{Abs: "/sdcard/my music", Rel: "/my music"}, nil)
	assert.Equal(t, "/files/", page.ParentHref)
	assert.Equal(t, "/files/my%20music/", page.UploadAction)
	buf.Reset()
	require.NoError(t, WriteListing(buf, page))
	assert.True(t, strings.Contains(buf.String(), "multipart/form-data"))
}

func TestListingEscapesNames(t *testing.T) {
	opt := &ListingOption{Prefix: "/files", Root: "/sdcard"}
	items := []*filestore.FileInfo{{Path: "/sdcard/<script>.txt", ModTime: testTime}}
	page := BuildListingPage(opt, &pathutil.ResolvedPath{Abs: "/sdcard", Rel: "/"}, items)
	buf := &bytes.Buffer{}
	require.NoError(t, WriteListing(buf, page))
	assert.False(t, strings.Contains(buf.String(), "<script>.txt"))
}

type parsedMultistatus struct {
	Responses []struct {
		Href     string `xml:"href"`
		Propstat []struct {
			Prop struct {
				DisplayName   string `xml:"displayname"`
				ContentLength string `xml:"getcontentlength"`
				ETag          string `xml:"getetag"`
				ResourceType  struct {
					Collection *struct{} `xml:"collection"`
				} `xml:"resourcetype"`
			} `xml:"prop"`
			Status string `xml:"status"`
		} `xml:"propstat"`
	} `xml:"response"`
}

func TestMultistatus(t *testing.T) {
	target := &pathutil.ResolvedPath{Abs: "/sdcard", Rel: "/"}
	info := &filestore.FileInfo{Path: "/sdcard", IsDir: true, ModTime: testTime}
	items := testItems()
	SortEntries(items)
	ms := BuildMultistatus("/sdcard", target, info, items)
	buf := &bytes.Buffer{}
	require.NoError(t, WriteXML(buf, ms))
	assert.True(t, strings.HasPrefix(buf.String(), "<?xml"))
	assert.True(t, strings.Contains(buf.String(), `<D:multistatus xmlns:D="DAV:">`))

	out := &parsedMultistatus{}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), out))
	require.Equal(t, 4, len(out.Responses))
	assert.Equal(t, "/sdcard/", out.Responses[0].Href)
	assert.NotNil(t, out.Responses[0].Propstat[0].Prop.ResourceType.Collection)
	assert.Equal(t, "0", out.Responses[0].Propstat[0].Prop.ContentLength)
	assert.Equal(t, "/sdcard/my%20music/", out.Responses[1].Href)
	assert.Equal(t, "/sdcard/a.mp3", out.Responses[2].Href)
	assert.Nil(t, out.Responses[2].Propstat[0].Prop.ResourceType.Collection)
	assert.Equal(t, "10", out.Responses[2].Propstat[0].Prop.ContentLength)
	assert.NotEmpty(t, out.Responses[2].Propstat[0].Prop.ETag)
	assert.Equal(t, "HTTP/1.1 200 OK", out.Responses[2].Propstat[0].Status)
}

func TestPropPatchEcho(t *testing.T) {
	body := `<?xml version="1.0"?>
<D:propertyupdate xmlns:D="DAV:" xmlns:Z="urn:schemas-microsoft-com:">
  <D:set><D:prop><Z:Win32LastModifiedTime>Mon, 06 May 2024 07:08:09 GMT</Z:Win32LastModifiedTime></D:prop></D:set>
  <D:remove><D:prop><Z:Win32FileAttributes/></D:prop></D:remove>
</D:propertyupdate>`
	update := &model.PropertyUpdate{}
	require.NoError(t, xml.Unmarshal([]byte(body), update))
	ms := BuildPropPatchEcho("/sdcard", &pathutil.ResolvedPath{Abs: "/sdcard/a.txt", Rel: "/a.txt"}, false, update)
	buf := &bytes.Buffer{}
	require.NoError(t, WriteXML(buf, ms))
	s := buf.String()
	assert.True(t, strings.Contains(s, "Win32LastModifiedTime"))
	assert.True(t, strings.Contains(s, "Win32FileAttributes"))
	assert.True(t, strings.Contains(s, "HTTP/1.1 200 OK"))
	assert.True(t, strings.Contains(s, "<D:href>/sdcard/a.txt</D:href>"))
}

package render

import (
	"encoding/xml"
	"io"
	"path"
	"sort"
	"strconv"

	"github.com/xxxsen/sdwebdav/filestore"
	"github.com/xxxsen/sdwebdav/pathutil"
	"github.com/xxxsen/sdwebdav/server/httpkit"
	"github.com/xxxsen/sdwebdav/server/model"
)

// SortEntries 目录在前, 同类按名字排序
func SortEntries(items []*filestore.FileInfo) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsDir != items[j].IsDir {
			return items[i].IsDir
		}
		return items[i].Name() < items[j].Name()
	})
}

func buildResponse(prefix string, rel string, info *filestore.FileInfo) *model.Response {
	name := path.Base(rel)
	if rel == "/" {
		name = path.Base(info.Path)
	}
	prop := model.Prop{
		DisplayName:  name,
		LastModified: httpkit.LastModified(info.ModTime),
		ResourceType: &model.ResourceType{},
	}
	if info.IsDir {
		prop.ResourceType.Collection = &struct{}{}
		prop.ContentLength = "0"
	} else {
		prop.ContentLength = strconv.FormatInt(info.Size, 10)
		prop.ContentType = httpkit.DetermineMimeType(name) // 基于扩展名提取文件类型
		prop.ETag = httpkit.ETag(info)
	}
	return &model.Response{
		Href: pathutil.Href(prefix, rel, info.IsDir),
		Propstats: []*model.Propstat{
			{Prop: prop, Status: model.StatusOK},
		},
	}
}

// BuildMultistatus target本身为第一个response, 之后为children(需为target的直接子级)
func BuildMultistatus(prefix string, target *pathutil.ResolvedPath, info *filestore.FileInfo, children []*filestore.FileInfo) *model.Multistatus {
	ms := &model.Multistatus{
		XMLNS:     "DAV:",
		Responses: make([]*model.Response, 0, len(children)+1),
	}
	ms.Responses = append(ms.Responses, buildResponse(prefix, target.Rel, info))
	for _, item := range children {
		ms.Responses = append(ms.Responses, buildResponse(prefix, path.Join(target.Rel, item.Name()), item))
	}
	return ms
}

// BuildPropPatchEcho 对所有请求修改的属性统一回显200, 属性本身不落盘
func BuildPropPatchEcho(prefix string, target *pathutil.ResolvedPath, isDir bool, update *model.PropertyUpdate) *model.Multistatus {
	props := make([]*model.EmptyProp, 0, 8)
	collect := func(actions []model.PropAction) {
		for _, act := range actions {
			for _, p := range act.Prop.Props {
				props = append(props, &model.EmptyProp{XMLName: p.XMLName})
			}
		}
	}
	collect(update.Set)
	collect(update.Remove)
	return &model.Multistatus{
		XMLNS: "DAV:",
		Responses: []*model.Response{
			{
				Href: pathutil.Href(prefix, target.Rel, isDir),
				Propstats: []*model.Propstat{
					{Prop: model.Prop{Extra: props}, Status: model.StatusOK},
				},
			},
		},
	}
}

func WriteXML(w io.Writer, v interface{}) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Flush()
}

package model

import "encoding/xml"

const (
	StatusOK = "HTTP/1.1 200 OK"
)

// Multistatus 是 WebDAV 返回的根结构
type Multistatus struct {
	XMLName   xml.Name    `xml:"D:multistatus"`
	XMLNS     string      `xml:"xmlns:D,attr"`
	Responses []*Response `xml:"D:response"`
}

// Response 代表每个文件或目录的信息
type Response struct {
	Href      string      `xml:"D:href"`
	Propstats []*Propstat `xml:"D:propstat"`
}

// Propstat 包含资源的属性和状态
type Propstat struct {
	Prop   Prop   `xml:"D:prop"`
	Status string `xml:"D:status"`
}

// Prop 存储 WebDAV 资源的各种属性
type Prop struct {
	DisplayName   string        `xml:"D:displayname,omitempty"`
	LastModified  string        `xml:"D:getlastmodified,omitempty"`
	ContentLength string        `xml:"D:getcontentlength,omitempty"`
	ContentType   string        `xml:"D:getcontenttype,omitempty"`
	ETag          string        `xml:"D:getetag,omitempty"`
	ResourceType  *ResourceType `xml:"D:resourcetype,omitempty"`
	Extra         []*EmptyProp  `xml:",omitempty"` // proppatch回显的属性名
}

// ResourceType 用于区分文件和目录, 文件为空元素
type ResourceType struct {
	Collection *struct{} `xml:"D:collection,omitempty"`
}

// EmptyProp 只有名字的属性, 例如 <Z:Win32LastModifiedTime xmlns="urn:schemas-microsoft-com:"/>
type EmptyProp struct {
	XMLName xml.Name
}

// PropertyUpdate PROPPATCH请求体, 只关心被修改的属性名
type PropertyUpdate struct {
	XMLName xml.Name     `xml:"DAV: propertyupdate"`
	Set     []PropAction `xml:"DAV: set"`
	Remove  []PropAction `xml:"DAV: remove"`
}

type PropAction struct {
	Prop PropList `xml:"DAV: prop"`
}

type PropList struct {
	Props []RawProp `xml:",any"`
}

type RawProp struct {
	XMLName xml.Name
	Inner   string `xml:",innerxml"`
}

// LockInfo LOCK请求体, 允许为空
type LockInfo struct {
	XMLName   xml.Name  `xml:"DAV: lockinfo"`
	LockScope LockScope `xml:"DAV: lockscope"`
	LockType  LockType  `xml:"DAV: locktype"`
	Owner     *InnerXML `xml:"DAV: owner"`
}

type LockScope struct {
	Exclusive *struct{} `xml:"DAV: exclusive"`
	Shared    *struct{} `xml:"DAV: shared"`
}

type LockType struct {
	Write *struct{} `xml:"DAV: write"`
}

type InnerXML struct {
	Inner string `xml:",innerxml"`
}

// LockDiscoveryProp LOCK成功时返回的结构
type LockDiscoveryProp struct {
	XMLName       xml.Name      `xml:"D:prop"`
	XMLNS         string        `xml:"xmlns:D,attr"`
	LockDiscovery LockDiscovery `xml:"D:lockdiscovery"`
}

type LockDiscovery struct {
	ActiveLock ActiveLock `xml:"D:activelock"`
}

type ActiveLock struct {
	LockType  ActiveLockType  `xml:"D:locktype"`
	LockScope ActiveLockScope `xml:"D:lockscope"`
	Depth     string          `xml:"D:depth"`
	Owner     *InnerXML       `xml:"D:owner,omitempty"`
	Timeout   string          `xml:"D:timeout"`
	LockToken Href            `xml:"D:locktoken"`
	LockRoot  Href            `xml:"D:lockroot"`
}

type ActiveLockType struct {
	Write struct{} `xml:"D:write"`
}

type ActiveLockScope struct {
	Exclusive *struct{} `xml:"D:exclusive,omitempty"`
	Shared    *struct{} `xml:"D:shared,omitempty"`
}

type Href struct {
	Href string `xml:"D:href"`
}

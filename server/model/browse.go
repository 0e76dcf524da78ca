package model

// ListingItem 目录页中的一行
type ListingItem struct {
	Name    string
	Href    string
	IsDir   bool
	Type    string
	Size    string
	ModTime string
}

// ListingPage 目录页渲染所需的全部数据
type ListingPage struct {
	Title           string
	Path            string
	HomeHref        string
	ParentHref      string
	UploadAction    string
	Items           []*ListingItem
	DownloadEnabled bool
	DeletionEnabled bool
	UploadEnabled   bool
}

package webdav

import "net/http"

const (
	MethodPropfind  = "PROPFIND"
	MethodProppatch = "PROPPATCH"
	MethodMkcol     = "MKCOL"
	MethodCopy      = "COPY"
	MethodMove      = "MOVE"
	MethodLock      = "LOCK"
	MethodUnlock    = "UNLOCK"
)

var AllowMethods = []string{
	http.MethodOptions,
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodDelete,
	MethodPropfind,
	MethodProppatch,
	MethodMkcol,
	MethodCopy,
	MethodMove,
	MethodLock,
	MethodUnlock,
}

// TransferMethods 需要占用传输名额的方法
var TransferMethods = []string{
	http.MethodGet,
	http.MethodPut,
	MethodCopy,
}

package consts

const (
	MimePrefixImage = "image"
	MimeImageJPEG   = "image/jpeg"
	MimeImagePNG    = "image/png"
)

const (
	ThumbnailWidth  = 320
	ThumbnailSuffix = "_thumb.jpg"
)

// 系统通知类型
const (
	SysBoxTypeLike    int8 = 1
	SysBoxTypeDislike int8 = 2
	SysBoxTypeRepost  int8 = 3
	SysBoxTypeShare   int8 = 4
)

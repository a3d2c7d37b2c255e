package proxysheet

import (
	"github.com/proxysheet/proxysheet/pkg/api"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option
type Item = api.Item
type PageFormat = api.PageFormat

func New() *Generator                            { return api.New() }
func NewWithOptions(options Options) *Generator  { return api.NewWithOptions(options) }
func DefaultOptions() Options                    { return api.DefaultOptions() }

var (
	WithPageFormat       = api.WithPageFormat
	WithPageFormatA4     = api.WithPageFormatA4
	WithPageFormatA3     = api.WithPageFormatA3
	WithCardSize         = api.WithCardSize
	WithStandardCardSize = api.WithStandardCardSize
	WithGap              = api.WithGap
	WithGuidelines       = api.WithGuidelines
	WithDebug            = api.WithDebug
	WithResourcePath     = api.WithResourcePath
	WithUserAgent        = api.WithUserAgent
	WithTitle            = api.WithTitle
	WithAuthor           = api.WithAuthor
	WithSubject          = api.WithSubject
	WithKeywords         = api.WithKeywords
)

var ErrNoItems = api.ErrNoItems

const (
	PageFormatA4 = api.PageFormatA4
	PageFormatA3 = api.PageFormatA3

	StandardCardWidth  = api.StandardCardWidth
	StandardCardHeight = api.StandardCardHeight
	MaxCardDimension   = api.MaxCardDimension
	DefaultGap         = api.DefaultGap
)

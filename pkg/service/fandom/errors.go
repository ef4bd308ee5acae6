package fandom

import "github.com/m-mizutani/goerr/v2"

var (
	ErrDumpLinkNotFound = goerr.New("dump link not found on statistics page")
	ErrNoXMLInArchive   = goerr.New("no XML file found in archive")
)

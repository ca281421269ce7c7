package main

type Options struct {
	Debug       bool   `required:"no" short:"d" long:"debug" description:"Enable debug logging"`
	Vendor      uint16 `required:"no" long:"vendor" base:"16" default:"413d" description:"USB vendor id of the scanner (hex)"`
	Product     uint16 `required:"no" long:"product" base:"16" default:"2107" description:"USB product id of the scanner (hex)"`
	ShowVersion bool   `required:"no" short:"v" long:"version" description:"Show version and exit"`
}

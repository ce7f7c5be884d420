// Package main は加入者データAPIの疎通確認ツール。
//
// 使い方:
//
//	hsprobe -addr http://localhost:8888 ping
//	hsprobe -impi alice@example.com -impu sip:alice@example.com digest
//	hsprobe -impu sip:alice@example.com reg-data
//	hsprobe -impu sip:alice@example.com -impi alice@example.com -reqtype reg put-reg-data
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/client"
)

func main() {
	addr := flag.String("addr", "http://localhost:8888", "接続先のベースURL")
	impi := flag.String("impi", "", "秘密識別子")
	impu := flag.String("impu", "", "公開識別子")
	reqtype := flag.String("reqtype", "reg", "put-reg-dataで送る要求種別")
	timeout := flag.Duration("timeout", 5*time.Second, "要求タイムアウト")
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
	}

	c := client.New(*addr, *timeout)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var err error
	switch flag.Arg(0) {
	case "ping":
		if err = c.Ping(ctx); err == nil {
			fmt.Println("OK")
		}

	case "digest":
		requireFlag(*impi, "-impi")
		var out *client.DigestResponse
		if out, err = c.Digest(ctx, *impi, *impu); err == nil {
			fmt.Printf("digest_HA1: %s\n", out.DigestHA1)
		}

	case "reg-data":
		requireFlag(*impu, "-impu")
		var body string
		if body, err = c.RegData(ctx, *impu, *impi); err == nil {
			fmt.Println(body)
		}

	case "put-reg-data":
		requireFlag(*impu, "-impu")
		var body string
		if body, err = c.PutRegData(ctx, *impu, *impi, *reqtype); err == nil {
			fmt.Println(body)
		}

	default:
		usage()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func requireFlag(value, name string) {
	if value == "" {
		fmt.Fprintf(os.Stderr, "error: %s is required\n", name)
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: hsprobe [flags] ping|digest|reg-data|put-reg-data")
	flag.PrintDefaults()
	os.Exit(2)
}

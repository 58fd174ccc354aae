// crmctl งาน admin ที่ไม่ผ่าน HTTP: migrate schema และสร้าง user (เช่น admin คนแรก)
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(openBackend).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

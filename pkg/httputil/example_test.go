package httputil_test

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/aurum/pkg/httputil"
)

func ExampleCache() {
	dir := filepath.Join(os.TempDir(), "aurum-cache-example")
	defer os.RemoveAll(dir)

	cache, err := httputil.NewCache(dir, time.Hour)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	record := map[string]string{"Name": "ripgrep-git", "Version": "14.1.0-2"}
	if err := cache.Set("info:ripgrep-git", record); err != nil {
		fmt.Println("Error:", err)
		return
	}

	var out map[string]string
	if ok, err := cache.Get("info:ripgrep-git", &out); ok && err == nil {
		fmt.Println(out["Name"], out["Version"])
	}
	// Output:
	// ripgrep-git 14.1.0-2
}

func ExampleCache_miss() {
	dir := filepath.Join(os.TempDir(), "aurum-cache-example-miss")
	defer os.RemoveAll(dir)

	cache, _ := httputil.NewCache(dir, time.Hour)

	var out string
	ok, err := cache.Get("never-stored", &out)
	fmt.Println("hit:", ok)
	fmt.Println("err:", err)
	// Output:
	// hit: false
	// err: <nil>
}

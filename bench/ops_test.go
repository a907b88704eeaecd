package slowhash_test

import (
	"fmt"
	"testing"

	"github.com/theflywheel/slowhash"
)

func benchKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
	}
	return keys
}

func BenchmarkInsert(b *testing.B) {
	keys := benchKeys(1 << 16)
	tbl := slowhash.New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := keys[i&(len(keys)-1)]
		tbl.Insert(k, k)
	}
}

func BenchmarkSearch(b *testing.B) {
	for _, name := range []string{"string", "xxhash"} {
		b.Run(name, func(b *testing.B) {
			var opts []slowhash.Option
			if name == "xxhash" {
				opts = append(opts, slowhash.WithXXHash())
			}
			keys := benchKeys(1 << 14)
			tbl := slowhash.New(opts...)
			for _, k := range keys {
				tbl.Insert(k, k)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, ok := tbl.Search(keys[i&(len(keys)-1)]); !ok {
					b.Fatal("key not found")
				}
			}
		})
	}
}

func BenchmarkInsertRemove(b *testing.B) {
	keys := benchKeys(1 << 10)
	tbl := slowhash.New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := keys[i&(len(keys)-1)]
		tbl.Insert(k, k)
		tbl.Remove(k)
	}
}

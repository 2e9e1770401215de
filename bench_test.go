package shmap

import (
	"testing"
)

func BenchmarkCreateAnonymous(b *testing.B) {
	for i := 0; i < b.N; i++ {
		m, err := CreateAnonymous(1 << 16)
		if err != nil {
			b.Fatal(err)
		}
		m.Close()
	}
}

func BenchmarkCreateView(b *testing.B) {
	m, err := CreateAnonymous(1 << 20)
	if err != nil {
		b.Fatal(err)
	}
	defer m.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v, err := m.CreateViewAccessor(0, 0)
		if err != nil {
			b.Fatal(err)
		}
		v.Close()
	}
}

func BenchmarkAccessorWriteAt(b *testing.B) {
	m, err := CreateAnonymous(1 << 20)
	if err != nil {
		b.Fatal(err)
	}
	defer m.Close()

	v, err := m.CreateViewAccessor(0, 0)
	if err != nil {
		b.Fatal(err)
	}
	defer v.Close()

	buf := make([]byte, 4096)
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		off := int64(i) * 4096 % (m.Capacity() - 4096)
		if _, err := v.WriteAt(buf, off); err != nil {
			b.Fatal(err)
		}
	}
}

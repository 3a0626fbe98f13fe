package orderbook

import "testing"

func BenchmarkAddOrder(b *testing.B) {
	book := NewBook(Config{SlabBlockSize: DefaultSlabBlockSize, SlabInitialCapacity: uint32(b.N + 1)})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.AddOrder(OrderID(i+1), Buy, Price(100+i%50), 10, int64(i))
	}
}

func BenchmarkAddOrder_SamePriceLevel(b *testing.B) {
	book := NewBook(Config{SlabBlockSize: DefaultSlabBlockSize, SlabInitialCapacity: uint32(b.N + 1)})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.AddOrder(OrderID(i+1), Buy, 100, 10, int64(i))
	}
}

func BenchmarkCancelOrder(b *testing.B) {
	book := NewBook(Config{SlabBlockSize: DefaultSlabBlockSize, SlabInitialCapacity: uint32(b.N + 1)})
	for i := 0; i < b.N; i++ {
		book.AddOrder(OrderID(i+1), Buy, Price(100+i%50), 10, int64(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book.CancelOrder(OrderID(i + 1))
	}
}

func BenchmarkBestBid(b *testing.B) {
	book := NewBook(DefaultConfig())
	for i := 0; i < 1000; i++ {
		book.AddOrder(OrderID(i+1), Buy, Price(i), 10, int64(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = book.BestBid()
	}
}

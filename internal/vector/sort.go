package vector

// sortEntry remembers where an entry sat before sorting so that entries the
// comparator considers equivalent keep their original relative order.
type sortEntry[T any] struct {
	item T
	pos  int
}

// QuickSort orders the entries by cmp. The pivot is the middle element of
// each range and partitioning is Lomuto style. Equivalent entries keep their
// relative order, so the result always matches InsertionSort.
func (v *Vector[T]) QuickSort(cmp Compare[T]) {
	v.compares = 0
	entries := make([]sortEntry[T], v.items)
	for i := range entries {
		entries[i] = sortEntry[T]{item: v.array[i], pos: i}
	}
	order := func(a, b sortEntry[T]) int {
		v.compares++
		if c := cmp(a.item, b.item); c != 0 {
			return c
		}
		return a.pos - b.pos
	}
	quickSort(entries, 0, len(entries)-1, order)
	for i, e := range entries {
		v.array[i] = e.item
	}
}

func quickSort[T any](array []sortEntry[T], left, right int, cmp func(a, b sortEntry[T]) int) {
	if left >= right {
		return
	}
	pivot := partition(array, left, right, left+(right-left)/2, cmp)
	quickSort(array, left, pivot-1, cmp)
	quickSort(array, pivot+1, right, cmp)
}

func partition[T any](array []sortEntry[T], left, right, pivotIndex int, cmp func(a, b sortEntry[T]) int) int {
	pivot := array[pivotIndex]
	array[pivotIndex], array[right] = array[right], array[pivotIndex]
	store := left
	for i := left; i < right; i++ {
		if cmp(array[i], pivot) <= 0 {
			array[i], array[store] = array[store], array[i]
			store++
		}
	}
	array[store], array[right] = array[right], array[store]
	return store
}

// InsertionSort orders the entries by cmp. It is stable and cheap when the
// entries are already close to sorted.
func (v *Vector[T]) InsertionSort(cmp Compare[T]) {
	v.compares = 0
	array := v.array[:v.items]
	for i := 1; i < len(array); i++ {
		t := array[i]
		j := i - 1
		for j >= 0 {
			v.compares++
			if cmp(array[j], t) <= 0 {
				break
			}
			array[j+1] = array[j]
			j--
		}
		array[j+1] = t
	}
}

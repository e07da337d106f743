package resolver

// Distance вычисляет расстояние Дамерау-Левенштейна между двумя строками:
// минимальное количество вставок, удалений, замен и перестановок соседних символов
func Distance(a, b string) int {
	r1 := []rune(a)
	r2 := []rune(b)
	len1 := len(r1)
	len2 := len(r2)

	// Крайние случаи
	if len1 == 0 {
		return len2
	}
	if len2 == 0 {
		return len1
	}

	// Матрица (len1+2) x (len2+2), нулевые строка и столбец служат границей
	matrix := make([][]int, len1+2)
	for i := range matrix {
		matrix[i] = make([]int, len2+2)
	}

	maxDist := len1 + len2
	matrix[0][0] = maxDist
	for i := 0; i <= len1; i++ {
		matrix[i+1][0] = maxDist
		matrix[i+1][1] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j+1] = maxDist
		matrix[1][j+1] = j
	}

	// Последняя строка, в которой встречался символ
	lastRow := make(map[rune]int)

	for i := 1; i <= len1; i++ {
		lastMatchCol := 0
		for j := 1; j <= len2; j++ {
			i1 := lastRow[r2[j-1]]
			j1 := lastMatchCol
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
				lastMatchCol = j
			}

			matrix[i+1][j+1] = min(
				matrix[i+1][j]+1,                   // вставка
				matrix[i][j+1]+1,                   // удаление
				matrix[i][j]+cost,                  // замена
				matrix[i1][j1]+(i-i1-1)+1+(j-j1-1), // перестановка
			)
		}
		lastRow[r1[i-1]] = i
	}

	return matrix[len1+1][len2+1]
}

// Similarity схожесть от 0.0 (полностью разные) до 1.0 (идентичные):
// 1 - расстояние / длина более длинной строки
func Similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}

	similarity := 1.0 - float64(Distance(a, b))/float64(maxLen)
	if similarity < 0.0 {
		similarity = 0.0
	}
	return similarity
}

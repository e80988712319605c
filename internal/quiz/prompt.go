package quiz

import (
	"fmt"
	"strings"
)

const systemPrompt = `Bạn là giáo viên Vật lý THPT soạn đề ôn tập theo Chương trình GDPT 2018.

Yêu cầu chung:
- Nội dung bám sát Chương trình GDPT 2018.
- Công thức Toán/Lý phải dùng LaTeX bọc trong $ (inline) hoặc $$ (block).
- Đảm bảo đáp án chính xác và lời giải chi tiết.
- ID câu hỏi phải là số nguyên tăng dần liên tiếp từ 1.
- Trả về các câu hỏi theo đúng thứ tự các phần được yêu cầu, mỗi câu có 'type' đúng bằng hình thức của phần đó.

Quy định về Hình thức câu hỏi (QUAN TRỌNG):
1. Nếu là 'Trắc nghiệm': Có đúng 4 phương án lựa chọn, trả về trong mảng 'options'. 'correctAnswer' là 'A', 'B', 'C' hoặc 'D'.
2. Nếu là 'Đúng/Sai':
   - Đây là dạng câu hỏi trắc nghiệm Đúng/Sai gồm 1 câu dẫn và 4 lệnh hỏi a), b), c), d).
   - 'content': Chứa câu dẫn hoặc phát biểu chung.
   - 'options': Phải chứa đúng 4 chuỗi tương ứng với nội dung của 4 ý a, b, c, d.
   - 'correctAnswer': Phải là chuỗi định dạng kết quả chính xác (Ví dụ: "a) Đúng - b) Sai - c) Sai - d) Đúng").
3. Nếu là 'Tự luận/Trả lời ngắn':
   - 'content': Nội dung câu hỏi bài tập hoặc lý thuyết.
   - 'options': Trả về mảng rỗng [].
   - 'correctAnswer': Đáp án ngắn gọn hoặc kết quả của bài toán.`

// buildUserMessage lists every item as a numbered part. The output depends
// only on the items and their order.
func buildUserMessage(items []RequestItem) string {
	var b strings.Builder

	b.WriteString("Tạo một bộ câu hỏi ôn tập Vật lý THPT tổng hợp dựa trên các yêu cầu sau:\n")
	for i, it := range items {
		fmt.Fprintf(&b, "\nPhần %d:\n", i+1)
		fmt.Fprintf(&b, "- Khối lớp: %d\n", int(it.Grade))
		fmt.Fprintf(&b, "- Bài: %s - %s\n", it.ChapterName, it.LessonName)
		fmt.Fprintf(&b, "- Số câu: %d\n", it.Quantity)
		fmt.Fprintf(&b, "- Hình thức: %s\n", it.Type)
		fmt.Fprintf(&b, "- Mức độ: %s\n", it.Difficulty)
	}
	fmt.Fprintf(&b, "\nTổng số câu: %d", TotalQuestions(items))

	return b.String()
}

package jsonutil_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/drblury/restview/jsonutil"
)

func Example() {
	type book struct {
		Title string `json:"title"`
		Year  int    `json:"year"`
		ISBN  string `json:"isbn"`
	}

	first := book{
		Title: "The Go Programming Language",
		Year:  2015,
		ISBN:  "978-0134190440",
	}

	data, _ := jsonutil.Marshal(first)
	fmt.Println(string(data))

	var decoded book
	_ = jsonutil.Unmarshal(data, &decoded)
	fmt.Println(decoded.Year)

	buf := &bytes.Buffer{}
	_ = jsonutil.Encode(buf, first)

	var streamed book
	_ = jsonutil.Decode(buf, &streamed)
	fmt.Println(streamed.ISBN)

	// Output:
	// {"title":"The Go Programming Language","year":2015,"isbn":"978-0134190440"}
	// 2015
	// 978-0134190440
}

func ExampleMarshalIndent() {
	type shelf struct {
		Section string   `json:"section"`
		Titles  []string `json:"titles"`
		Row     int      `json:"row"`
	}

	payload := shelf{
		Section: "systems",
		Titles:  []string{"TCP/IP Illustrated", "The Mythical Man-Month"},
		Row:     3,
	}

	data, err := jsonutil.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Println("marshal error:", err)
		return
	}

	fmt.Println(strings.TrimSpace(string(data)))

	var decoded shelf
	if err := jsonutil.Unmarshal(data, &decoded); err != nil {
		fmt.Println("unmarshal error:", err)
		return
	}
	fmt.Println(decoded.Row)

	// Output:
	// {
	//   "section": "systems",
	//   "titles": [
	//     "TCP/IP Illustrated",
	//     "The Mythical Man-Month"
	//   ],
	//   "row": 3
	// }
	// 3
}

func ExampleEncode_stream() {
	type checkout struct {
		Member string `json:"member"`
		Copies int    `json:"copies"`
	}

	buf := &bytes.Buffer{}
	payload := checkout{Member: "m-1042", Copies: 2}

	if err := jsonutil.Encode(buf, payload); err != nil {
		fmt.Println("encode error:", err)
		return
	}
	fmt.Println(strings.TrimSpace(buf.String()))

	var decoded checkout
	if err := jsonutil.Decode(bytes.NewReader(buf.Bytes()), &decoded); err != nil {
		fmt.Println("decode error:", err)
		return
	}
	fmt.Printf("%s %d\n", decoded.Member, decoded.Copies)

	// Output:
	// {"member":"m-1042","copies":2}
	// m-1042 2
}

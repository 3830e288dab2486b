package tagdict_test

import (
	"fmt"
	"log"
	"sort"

	"github.com/kitchoi/tagdict"
)

type person struct {
	Name string
	Age  int
}

// Example walks through registration, intersection queries, the collapse
// convention, tag mutation, and removal with unhashable-by-value payloads.
func Example() {
	td := tagdict.New[*person]()

	ben := td.Add(&person{Name: "Ben"}, "male", "student")
	td.Add(&person{Name: "Tom", Age: 40}, "male", "teacher")
	td.Add(&person{Name: "Tina", Age: 30}, "female", "teacher")
	td.Add(&person{Name: "Ann"}, "female", "student")

	fmt.Println("residents:", td.Get(tagdict.Wildcard).Len())

	// Exactly one item carries both tags, so the selection collapses.
	tina, err := td.Get("teacher", "female").Item()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("teacher+female:", tina.Name)

	// Two students: the single-item view refuses to pick one.
	students := td.Get("student")
	if _, err := students.Item(); err != nil {
		fmt.Println("students:", err)
	}
	names := make([]string, 0, students.Len())
	for _, p := range students.Items() {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	fmt.Println("students:", names)

	// Chained mutation on an unambiguous selection.
	if err := td.Get("teacher", "female").AddTag("mother"); err != nil {
		log.Fatal(err)
	}
	mother, _ := td.Get("mother").Item()
	fmt.Println("mother:", mother.Name)

	// Tag removal narrows the student query to a single match.
	if err := td.RemoveTag(ben, "student"); err != nil {
		log.Fatal(err)
	}
	ann, _ := td.Get("student").Item()
	fmt.Println("student:", ann.Name)

	// Replacing the tag set moves the item out of its old buckets.
	if err := td.Get("female", "mother", "teacher").ReplaceTags("human"); err != nil {
		log.Fatal(err)
	}
	fmt.Println("mothers left:", td.Get("mother").Len())
	human, _ := td.Get("human").Item()
	fmt.Println("human:", human.Name)

	// Output:
	// residents: 4
	// teacher+female: Tina
	// students: ambiguous selection: 2 items match
	// students: [Ann Ben]
	// mother: Tina
	// student: Ann
	// mothers left: 0
	// human: Tina
}

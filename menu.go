package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"campuslib/library"
)

const tableWidth = 100

// readPassword securely reads a password with masking.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println() // newline after masked input
	return strings.TrimSpace(string(bytePassword)), nil
}

// readLine prompts for a trimmed line. ok is false when stdin is closed.
func readLine(sc *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

// readInt prompts for a number. Unparseable input yields 0, which is out
// of range for every 1-based menu, so callers report it as invalid.
func readInt(sc *bufio.Scanner, prompt string) (int, bool) {
	text, ok := readLine(sc, prompt)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, true
	}
	return n, true
}

func printLine(width int) {
	fmt.Println(strings.Repeat("=", width))
}

func printHeader(title string) {
	fmt.Println()
	printLine(tableWidth)
	padding := (tableWidth - len(title)) / 2
	if padding < 0 {
		padding = 0
	}
	fmt.Printf("%s%s\n", strings.Repeat(" ", padding), title)
	printLine(tableWidth)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2006-01-02")
}

// loginSystem is the top-level menu loop. It returns when the user exits
// or stdin closes.
func loginSystem(mgr *library.Manager) {
	sc := bufio.NewScanner(os.Stdin)
	for {
		printHeader("Library Management System")
		fmt.Println("1. Admin Login")
		fmt.Println("2. Student Login")
		fmt.Println("3. Student Signup")
		fmt.Println("4. Exit")

		choice, ok := readInt(sc, "\nEnter choice: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			handleAdminLogin(sc, mgr)
		case 2:
			handleStudentLogin(sc, mgr)
		case 3:
			handleSignup(sc, mgr)
		case 4:
			return
		default:
			fmt.Println("\n[!] Invalid choice.")
		}
	}
}

func handleAdminLogin(sc *bufio.Scanner, mgr *library.Manager) {
	printHeader("Admin Login")
	username, ok := readLine(sc, "Admin username: ")
	if !ok {
		return
	}
	password, err := readPassword("Admin password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}

	if username != adminUsername || password != adminPassword {
		fmt.Println("\n[!] Invalid admin credentials.")
		return
	}
	fmt.Println("\nAdmin login successful.")
	adminMenu(sc, mgr)
}

func adminMenu(sc *bufio.Scanner, mgr *library.Manager) {
	for {
		printHeader("Admin Menu")
		fmt.Println("1. View All Books")
		fmt.Println("2. Search Book")
		fmt.Println("3. Filter Books by Stream & Subject")
		fmt.Println("4. View Issued/Returned Logs")
		fmt.Println("5. Logout")

		choice, ok := readInt(sc, "\nEnter choice: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			handleListBooks(mgr)
		case 2:
			handleSearchBooks(sc, mgr)
		case 3:
			handleFilterBooks(sc, mgr)
		case 4:
			printHeader("Admin Report: Issued/Returned Books")
			printLogs(mgr.Logs())
		case 5:
			return
		default:
			fmt.Println("\n[!] Invalid choice.")
		}
	}
}

func handleStudentLogin(sc *bufio.Scanner, mgr *library.Manager) {
	printHeader("Student Login")
	username, ok := readLine(sc, "Username: ")
	if !ok {
		return
	}
	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}

	index, err := mgr.Login(username, password)
	if err != nil {
		fmt.Println("\n[!] Invalid credentials.")
		return
	}
	fmt.Printf("\nLogin successful! Welcome, %s\n", username)
	studentMenu(sc, mgr, index)
}

func handleSignup(sc *bufio.Scanner, mgr *library.Manager) {
	printHeader("Student Signup")
	username, ok := readLine(sc, "Enter username: ")
	if !ok {
		return
	}
	if username == "" {
		fmt.Println("\n[!] Username cannot be empty.")
		return
	}
	if mgr.HasStudent(username) {
		fmt.Println("\n[!] Username already exists. Try logging in.")
		return
	}

	var password string
	for {
		var err error
		password, err = readPassword("Enter password: ")
		if err != nil {
			fmt.Printf("Error reading password: %v\n", err)
			return
		}
		if err := library.ValidatePassword(password); err != nil {
			fmt.Printf("[!] %v\n", err)
			continue
		}
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			fmt.Printf("Error reading password: %v\n", err)
			return
		}
		if password != confirm {
			fmt.Println("[!] Passwords do not match. Try again.")
			continue
		}
		break
	}

	if _, err := mgr.Register(username, password); err != nil {
		switch {
		case errors.Is(err, library.ErrDuplicateUsername):
			fmt.Println("\n[!] Username already exists. Try logging in.")
		case errors.Is(err, library.ErrRegistryFull):
			fmt.Println("\n[!] The student registry is full.")
		default:
			fmt.Printf("\n[!] Signup failed: %v\n", err)
		}
		return
	}
	fmt.Println("\nSignup successful! You can now login.")
}

func studentMenu(sc *bufio.Scanner, mgr *library.Manager, studentIndex int) {
	for {
		printHeader("Student Menu")
		fmt.Println("1. View All Books")
		fmt.Println("2. Search Book")
		fmt.Println("3. Filter Books by Stream & Subject")
		fmt.Println("4. Issue Book")
		fmt.Println("5. Return Book")
		fmt.Println("6. View My Issued Books")
		fmt.Println("7. Logout")

		choice, ok := readInt(sc, "\nEnter choice: ")
		if !ok {
			return
		}
		switch choice {
		case 1:
			handleListBooks(mgr)
		case 2:
			handleSearchBooks(sc, mgr)
		case 3:
			handleFilterBooks(sc, mgr)
		case 4:
			handleIssueBook(sc, mgr, studentIndex)
		case 5:
			handleReturnBook(sc, mgr, studentIndex)
		case 6:
			handleMyIssuedBooks(mgr, studentIndex)
		case 7:
			return
		default:
			fmt.Println("\n[!] Invalid choice.")
		}
	}
}

func handleListBooks(mgr *library.Manager) {
	printHeader("Available Books")
	fmt.Printf("| %-12s | %-20s | %-35s | %8s |\n", "Stream", "Subject", "Book Name", "Quantity")
	printLine(tableWidth)
	for _, stream := range mgr.Streams() {
		for _, subject := range stream.Subjects {
			for _, book := range subject.Books {
				fmt.Printf("| %-12s | %-20s | %-35s | %8d |\n",
					stream.Name, subject.Name, book.Name, book.Quantity)
			}
		}
	}
	printLine(tableWidth)
}

func handleSearchBooks(sc *bufio.Scanner, mgr *library.Manager) {
	printHeader("Search Book")
	keyword, ok := readLine(sc, "Enter book name keyword to search: ")
	if !ok {
		return
	}

	results := mgr.SearchBooks(keyword)
	if len(results) == 0 {
		fmt.Printf("\n[!] No books found matching '%s'\n", keyword)
		return
	}

	fmt.Printf("| %-12s | %-20s | %-35s | %8s |\n", "Stream", "Subject", "Book Name", "Quantity")
	printLine(tableWidth)
	for _, r := range results {
		fmt.Printf("| %-12s | %-20s | %-35s | %8d |\n",
			r.StreamName, r.SubjectName, r.Book.Name, r.Book.Quantity)
	}
	printLine(tableWidth)
}

// selectSubject walks the user through stream and subject selection and
// returns zero-based indexes.
func selectSubject(sc *bufio.Scanner, mgr *library.Manager) (int, int, bool) {
	streams := mgr.Streams()
	fmt.Println("Available Streams:")
	for i, stream := range streams {
		fmt.Printf("%d. %s\n", i+1, stream.Name)
	}
	s, ok := readInt(sc, "\nEnter stream number: ")
	if !ok {
		return 0, 0, false
	}
	if s < 1 || s > len(streams) {
		fmt.Println("\n[!] Invalid stream number.")
		return 0, 0, false
	}

	stream := streams[s-1]
	fmt.Printf("\nSubjects in %s:\n", stream.Name)
	for j, subject := range stream.Subjects {
		fmt.Printf("%d. %s\n", j+1, subject.Name)
	}
	sub, ok := readInt(sc, "\nEnter subject number: ")
	if !ok {
		return 0, 0, false
	}
	if sub < 1 || sub > len(stream.Subjects) {
		fmt.Println("\n[!] Invalid subject number.")
		return 0, 0, false
	}
	return s - 1, sub - 1, true
}

func printSubjectBooks(subject library.Subject) {
	fmt.Printf("| %-4s | %-35s | %8s |\n", "No.", "Book Name", "Quantity")
	printLine(tableWidth)
	for k, book := range subject.Books {
		fmt.Printf("| %-4d | %-35s | %8d |\n", k+1, book.Name, book.Quantity)
	}
	printLine(tableWidth)
}

func handleFilterBooks(sc *bufio.Scanner, mgr *library.Manager) {
	printHeader("Filter Books by Stream & Subject")
	s, sub, ok := selectSubject(sc, mgr)
	if !ok {
		return
	}
	fmt.Println()
	printSubjectBooks(mgr.Streams()[s].Subjects[sub])
}

func handleIssueBook(sc *bufio.Scanner, mgr *library.Manager, studentIndex int) {
	printHeader("Issue Book")
	s, sub, ok := selectSubject(sc, mgr)
	if !ok {
		return
	}
	subject := mgr.Streams()[s].Subjects[sub]
	fmt.Println()
	printSubjectBooks(subject)

	b, ok := readInt(sc, "Enter book number: ")
	if !ok {
		return
	}
	if b < 1 || b > len(subject.Books) {
		fmt.Println("\n[!] Invalid book number.")
		return
	}

	record, err := mgr.IssueBook(studentIndex, library.BookRef{Stream: s, Subject: sub, Book: b - 1})
	switch {
	case errors.Is(err, library.ErrLoanLimitReached):
		fmt.Println("\n[!] You have reached the maximum limit of issued books.")
	case errors.Is(err, library.ErrUnavailable):
		fmt.Println("\n[!] Sorry, book not available currently.")
	case err != nil:
		fmt.Printf("\n[!] %v\n", err)
	default:
		fmt.Printf("\n[+] Book '%s' issued successfully!\n", record.BookName)
		fmt.Printf("Due date: %s\n", formatDate(record.DueDate))
	}
}

func handleReturnBook(sc *bufio.Scanner, mgr *library.Manager, studentIndex int) {
	printHeader("Return Book")
	student, err := mgr.Student(studentIndex)
	if err != nil {
		fmt.Printf("\n[!] %v\n", err)
		return
	}
	if len(student.Issued) == 0 {
		fmt.Println("[!] You have no issued books to return.")
		return
	}

	fmt.Printf("| %-4s | %-35s | %-12s |\n", "No.", "Book Name", "Due Date")
	printLine(tableWidth)
	hasOpen := false
	for i, record := range student.Issued {
		if !record.Returned {
			fmt.Printf("| %-4d | %-35s | %-12s |\n", i+1, record.BookName, formatDate(record.DueDate))
			hasOpen = true
		}
	}
	printLine(tableWidth)
	if !hasOpen {
		fmt.Println("All books have been returned.")
		return
	}

	choice, ok := readInt(sc, "Enter the number of the book to return: ")
	if !ok {
		return
	}

	fine, err := mgr.ReturnBook(studentIndex, choice-1)
	switch {
	case errors.Is(err, library.ErrRecordNotFound), errors.Is(err, library.ErrAlreadyReturned):
		fmt.Println("[!] Invalid choice.")
	case err != nil:
		fmt.Printf("\n[!] %v\n", err)
	case fine > 0:
		record := student.Issued[choice-1]
		fmt.Printf("\n[!] Book '%s' returned. You have a fine of %d units for late return.\n",
			record.BookName, fine)
	default:
		record := student.Issued[choice-1]
		fmt.Printf("\n[+] Book '%s' returned successfully, no fine.\n", record.BookName)
	}
}

func handleMyIssuedBooks(mgr *library.Manager, studentIndex int) {
	printHeader("My Issued Books")
	student, err := mgr.Student(studentIndex)
	if err != nil {
		fmt.Printf("\n[!] %v\n", err)
		return
	}
	if len(student.Issued) == 0 {
		fmt.Println("You have no issued books.")
		return
	}

	fmt.Printf("| %-4s | %-35s | %-12s | %-12s | %-10s |\n",
		"No.", "Book Name", "Issued On", "Due Date", "Status")
	printLine(tableWidth)
	for i, record := range student.Issued {
		status := "Issued"
		if record.Returned {
			status = "Returned"
		}
		fmt.Printf("| %-4d | %-35s | %-12s | %-12s | %-10s |\n",
			i+1, record.BookName, formatDate(record.IssueDate), formatDate(record.DueDate), status)
	}
	printLine(tableWidth)
}

func printLogs(logs []library.LogEntry) {
	if len(logs) == 0 {
		fmt.Println("No records found.")
		return
	}

	fmt.Printf("| %-4s | %-15s | %-35s | %-10s | %-19s |\n",
		"No.", "User", "Book Name", "Action", "Date/Time")
	printLine(tableWidth)
	for i, entry := range logs {
		fmt.Printf("| %-4d | %-15s | %-35s | %-10s | %-19s |\n",
			i+1, entry.Username, entry.BookName, entry.Action,
			entry.Timestamp.Format("2006-01-02 15:04:05"))
	}
	printLine(tableWidth)
}
